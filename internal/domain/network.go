package domain

// Network identifies the affiliate network a report came from.
type Network string

const (
	NetworkBoostiny      Network = "boostiny"
	NetworkDigizag       Network = "digizag"
	NetworkPlatformance  Network = "platformance"
	NetworkOptimiseMedia Network = "optimisemedia"
)

// ParseNetwork maps a raw network name to a known Network. The second
// return value reports whether the name matched: callers that receive
// false are expected to log a warning and fall back to the boostiny
// rules instead of silently mis-normalizing a typo'd name.
func ParseNetwork(name string) (Network, bool) {
	switch Network(name) {
	case NetworkBoostiny, NetworkDigizag, NetworkPlatformance, NetworkOptimiseMedia:
		return Network(name), true
	}
	return NetworkBoostiny, false
}
