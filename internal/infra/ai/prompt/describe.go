package prompt

// DescribeImage is the fixed instruction sent alongside every uploaded image.
func DescribeImage() string {
	return "Describe this image in detail, including objects, colors, mood, and any notable features. Be specific and thorough."
}
