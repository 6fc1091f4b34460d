package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/atomicstack/spider-tui/internal/backend"
	"github.com/atomicstack/spider-tui/internal/client"
	"github.com/atomicstack/spider-tui/internal/logging"
	"github.com/atomicstack/spider-tui/internal/logging/events"
	"github.com/atomicstack/spider-tui/internal/protocol"
	"github.com/atomicstack/spider-tui/internal/terminal"
	"github.com/atomicstack/spider-tui/internal/theme"
	"github.com/atomicstack/spider-tui/internal/ui"
)

// ClientName identifies this client in the hello frame.
const ClientName = "spider-tui"

// Version is reported in the hello frame.
var Version = "dev"

// Config describes user-provided application options.
type Config struct {
	StatePath   string
	KeyfilePath string
	// Address is tried before the persisted address strategies.
	Address     string
	Compression string
	Color       string
	Width       int
	Height      int
	Inline      bool
}

// Run loads the client identity, connects to the host and runs the
// interface until the user quits or the connection ends.
func Run(ctx context.Context, cfg Config) error {
	theme.ApplyProfile(cfg.Color)
	compression, err := protocol.ParseCompression(cfg.Compression)
	if err != nil {
		return err
	}
	st, err := loadIdentity(cfg)
	if err != nil {
		return err
	}
	fingerprint := client.Fingerprint(st.Self)

	conn, err := backend.Dial(ctx, st.Addresses, backend.Options{
		Compression: compression,
		Hello:       &protocol.Hello{Client: ClientName, Version: Version, Fingerprint: fingerprint},
	})
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	term := terminal.New(terminal.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Fingerprint: fingerprint,
		Inline:      cfg.Inline,
	})
	proc := ui.NewProcessor(ui.NewModel(), term)
	if err := Serve(ctx, term, conn, proc); err != nil {
		return err
	}
	if err := term.Err(); err != nil {
		return err
	}
	return conn.Err()
}

// loadIdentity reads the client state, applies the configured address and
// records the host id from the key file.
func loadIdentity(cfg Config) (*client.State, error) {
	st, created, err := client.LoadState(cfg.StatePath)
	if err != nil {
		return nil, err
	}
	dirty := false
	if cfg.Address != "" && (len(st.Addresses) == 0 || st.Addresses[0] != cfg.Address) {
		st.AddAddress(cfg.Address)
		dirty = true
	}
	hostID, err := client.LoadKey(cfg.KeyfilePath)
	if err != nil {
		return nil, err
	}
	if len(hostID) > 0 && (!st.HasHost() || !bytes.Equal(st.Host.ID, hostID)) {
		st.SetHost(hostID)
		dirty = true
	}
	if dirty {
		if err := st.Save(); err != nil {
			return nil, err
		}
	}
	events.App.Identity(st.Path(), created, st.Addresses)
	return st, nil
}

// Serve runs the processor and multiplexes terminal input, host messages
// and outbound messages until any of them closes. The processor, and with
// it the renderer, has shut down when Serve returns.
func Serve(ctx context.Context, term InputSource, host Host, proc *ui.Processor) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	procErr := make(chan error, 1)
	go func() { procErr <- proc.Run(ctx) }()

	reason, err := multiplex(ctx, term, host, proc)
	cancel()
	runErr := <-procErr
	events.App.Stop(reason)
	return errors.Join(err, runErr)
}

func multiplex(ctx context.Context, term InputSource, host Host, proc *ui.Processor) (string, error) {
	inputs := term.Events()
	inbound := host.Events()
	outbound := proc.Outbound()
	for {
		select {
		case <-ctx.Done():
			return "context", nil
		case ev, ok := <-inputs:
			if !ok {
				return "input closed", nil
			}
			if !proc.Deliver(ctx, ev) {
				return "processor stopped", nil
			}
		case msg, ok := <-inbound:
			if !ok {
				return "host closed", nil
			}
			if !proc.Deliver(ctx, msg) {
				return "processor stopped", nil
			}
		case msg, ok := <-outbound:
			if !ok {
				return "processor exited", nil
			}
			if err := host.Send(ctx, msg); err != nil {
				if ctx.Err() != nil {
					return "context", nil
				}
				logging.Error(err)
				return "send failed", err
			}
		}
	}
}
