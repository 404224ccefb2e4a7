// Package identify answers whether automatic language identification
// supports a language code.
package identify

// additionalCodes are detected through extra language profiles shipped with
// the checker, on top of what the identifier supports out of the box.
var additionalCodes = [...]string{"be", "ca", "eo", "gl", "ro", "sk", "sl", "uk"}

// Detector knows which codes are auto-detected.
type Detector struct {
	codes map[string]struct{}
}

// NewDetector creates a Detector from the identifier's supported codes.
// The additional codes are always included.
func NewDetector(supported []string) *Detector {
	d := &Detector{codes: make(map[string]struct{}, len(supported)+len(additionalCodes))}
	for _, code := range supported {
		d.codes[code] = struct{}{}
	}
	for _, code := range additionalCodes {
		d.codes[code] = struct{}{}
	}
	return d
}

// IsAutoDetected reports whether code is supported.
func (d *Detector) IsAutoDetected(code string) bool {
	_, ok := d.codes[code]
	return ok
}
