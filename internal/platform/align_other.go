//go:build !linux

package platform

// DIOAlignment is unavailable off Linux; callers use the 512-byte fallback.
func DIOAlignment(string) (uint32, error) {
	return 0, ErrNoDIOAlign
}
