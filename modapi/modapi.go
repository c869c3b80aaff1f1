// Package modapi defines the contract between the bot and its runtime-loaded
// feature modules.
//
// A feature module is a Go source file in the configured module directory,
// declared as `package module`, exposing a constructor:
//
//	func New() modapi.Module
//
// Files in the module directory without a conforming New are treated as
// utility files and skipped. Modules are interpreted with yaegi and may
// import the standard library and this package only.
package modapi

import (
	"log/slog"
	"reflect"
)

// Module is the entry point every feature module must implement.
type Module interface {
	// Name identifies the module in the bot's registry. Registering the
	// same name twice is a no-op.
	Name() string

	// Init is called once, after the bot has authenticated and the guild
	// cache is warm. The given client remains valid for the process lifetime.
	Init(c Client) error
}

// Client is the capability surface handed to each module's Init. It is owned
// by the bot; modules hold it instead of reaching for globals.
type Client interface {
	// SendMessage sends content as a new message to the given channel.
	SendMessage(channelID string, content string) error

	// GuildID returns the configured guild identifier.
	GuildID() string

	// ColorRandomization reports whether the color-randomization toggle
	// is currently enabled.
	ColorRandomization() bool

	// SetColorRandomization flips the toggle to the given value.
	SetColorRandomization(enabled bool)

	// EmbedColor returns the configured primary embed color, in the
	// integer form discord embeds expect. Modules honoring the
	// color-randomization toggle use this as the non-randomized color.
	EmbedColor() int

	// EmbedColorAccent returns the configured secondary embed color.
	EmbedColorAccent() int

	// Logger returns a logger scoped to the calling module.
	Logger() *slog.Logger
}

// Symbols exposes this package to the yaegi interpreter, in the layout
// produced by `yaegi extract`.
var Symbols = map[string]map[string]reflect.Value{
	"github.com/AW1534/lommus/modapi/modapi": {
		"Client":  reflect.ValueOf((*Client)(nil)),
		"Module":  reflect.ValueOf((*Module)(nil)),
		"_Client": reflect.ValueOf((*_modapiClient)(nil)),
		"_Module": reflect.ValueOf((*_modapiModule)(nil)),
	},
}

// _modapiModule is an interface wrapper for Module, allowing interpreted
// types to satisfy the interface.
type _modapiModule struct {
	IValue interface{}
	WInit  func(c Client) error
	WName  func() string
}

func (w _modapiModule) Init(c Client) error { return w.WInit(c) }
func (w _modapiModule) Name() string        { return w.WName() }

// _modapiClient is an interface wrapper for Client.
type _modapiClient struct {
	IValue                 interface{}
	WColorRandomization    func() bool
	WEmbedColor            func() int
	WEmbedColorAccent      func() int
	WGuildID               func() string
	WLogger                func() *slog.Logger
	WSendMessage           func(channelID string, content string) error
	WSetColorRandomization func(enabled bool)
}

func (w _modapiClient) ColorRandomization() bool { return w.WColorRandomization() }
func (w _modapiClient) EmbedColor() int          { return w.WEmbedColor() }
func (w _modapiClient) EmbedColorAccent() int    { return w.WEmbedColorAccent() }
func (w _modapiClient) GuildID() string          { return w.WGuildID() }
func (w _modapiClient) Logger() *slog.Logger     { return w.WLogger() }
func (w _modapiClient) SendMessage(channelID string, content string) error {
	return w.WSendMessage(channelID, content)
}
func (w _modapiClient) SetColorRandomization(enabled bool) { w.WSetColorRandomization(enabled) }
