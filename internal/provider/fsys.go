package provider

import (
	"context"
	"fmt"

	"github.com/desertthunder/filedialog/dialog"
	"golang.org/x/time/rate"
)

// Throttled wraps a [dialog.FS] with a bytes-per-second limit. Useful for
// rehearsing how a host behaves while a large save or load is still in
// flight: the dialog resolves, the operation stays pending, ticks keep
// running.
type Throttled struct {
	inner   dialog.FS
	limiter *rate.Limiter
}

// NewThrottled wraps inner, limiting payload I/O to bytesPerSec.
// A nil inner wraps [dialog.OSFS]; a non-positive rate defaults to 1MiB/s.
func NewThrottled(inner dialog.FS, bytesPerSec int) *Throttled {
	if inner == nil {
		inner = dialog.OSFS{}
	}
	if bytesPerSec <= 0 {
		bytesPerSec = 1 << 20
	}
	return &Throttled{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec),
	}
}

// wait charges n bytes against the limiter, in burst-sized slices so
// payloads larger than one second's allowance still pass.
func (t *Throttled) wait(ctx context.Context, n int) error {
	for n > 0 {
		slice := n
		if burst := t.limiter.Burst(); slice > burst {
			slice = burst
		}
		if err := t.limiter.WaitN(ctx, slice); err != nil {
			return fmt.Errorf("throttled i/o interrupted: %w", err)
		}
		n -= slice
	}
	return nil
}

func (t *Throttled) WriteFile(ctx context.Context, target dialog.Target, contents []byte) error {
	if err := t.wait(ctx, len(contents)); err != nil {
		return err
	}
	return t.inner.WriteFile(ctx, target, contents)
}

func (t *Throttled) ReadFile(ctx context.Context, target dialog.Target) ([]byte, error) {
	contents, err := t.inner.ReadFile(ctx, target)
	if err != nil {
		return nil, err
	}
	if err := t.wait(ctx, len(contents)); err != nil {
		return nil, err
	}
	return contents, nil
}
