package pdo

import "fmt"

// ErrVersionMismatch is returned when a received frame's PDO mapping
// version does not match the version the local mapping was configured
// with. DS 301 requires a node to discard the payload rather than
// apply it against a stale mapping.
type ErrVersionMismatch struct {
	Expected uint8
	Got      uint8
}

func (e *ErrVersionMismatch) Error() string {
	return fmt.Sprintf("pdo: mapping version mismatch: expected %d, got %d", e.Expected, e.Got)
}

// VersionedMapping pairs a Mapping with the configuration version it
// was built from, so a frame's embedded PDOVersion can be checked
// before the mapping is applied.
type VersionedMapping struct {
	Version uint8
	*Mapping
}

// CheckVersion returns ErrVersionMismatch if frameVersion does not
// match the mapping's configured version.
func (v *VersionedMapping) CheckVersion(frameVersion uint8) error {
	if v.Version != frameVersion {
		return &ErrVersionMismatch{Expected: v.Version, Got: frameVersion}
	}
	return nil
}
