package lommus

// RuntimeConfig holds settings that can change while the bot is running.
// It's owned by [Bot] and handed to feature modules through the [modapi.Client]
// capability surface rather than exposed as package-level state. All state
// here is process-scoped and lost on restart.
type RuntimeConfig struct {
	// ColorRandomization enables per-message embed color randomization in
	// feature modules that support it. Flipped by `/toggle toggle_color`.
	ColorRandomization bool `json:"color_randomization"`
}

// DefaultRuntimeConfig returns the state the bot starts in.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		ColorRandomization: false,
	}
}

// RuntimeConfig returns a copy of the current runtime configuration
func (b *Bot) RuntimeConfig() RuntimeConfig {
	b.cfgMu.RLock()
	defer b.cfgMu.RUnlock()
	return *b.runtimeConfig
}

// ColorRandomization reports whether embed color randomization is enabled.
func (b *Bot) ColorRandomization() bool {
	b.cfgMu.RLock()
	defer b.cfgMu.RUnlock()
	return b.runtimeConfig.ColorRandomization
}

// SetColorRandomization sets the color randomization flag.
func (b *Bot) SetColorRandomization(enabled bool) {
	b.cfgMu.Lock()
	defer b.cfgMu.Unlock()
	b.runtimeConfig.ColorRandomization = enabled
}

// ToggleColorRandomization flips the color randomization flag, returning
// the new value.
func (b *Bot) ToggleColorRandomization() bool {
	b.cfgMu.Lock()
	defer b.cfgMu.Unlock()
	b.runtimeConfig.ColorRandomization = !b.runtimeConfig.ColorRandomization
	return b.runtimeConfig.ColorRandomization
}
