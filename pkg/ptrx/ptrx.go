package ptrx

import "time"

// Pointer helpers for optional struct fields.

func String(s string) *string { return &s }
func Bool(b bool) *bool { return &b }
func Int(i int) *int { return &i }
func Float64(f float64) *float64 { return &f }
func Time(t time.Time) *time.Time { return &t }

// StringValue dereferences p, returning "" when nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Float64Value dereferences p, returning 0 when nil.
func Float64Value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
