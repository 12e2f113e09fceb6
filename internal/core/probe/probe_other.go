//go:build !darwin && !linux && !windows

package probe

func newPlatformProbe() Probe {
	return &unsupportedProbe{}
}
