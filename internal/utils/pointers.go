package utils

func StringPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func BoolPtr(b bool) *bool {
	return &b
}
