package op

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/beam-runtime/errors"
	"github.com/wippyai/beam-runtime/term"
)

// cancelCheckInterval is how many instructions DecodeAll workers decode
// between context checks.
const cancelCheckInterval = 1024

// StreamError reports the failing instruction of a stream.
type StreamError struct {
	Err    error
	Index  int // instructions decoded before the failure
	Offset int // byte offset of the failing opcode
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("instruction %d at offset %d: %v", e.Index, e.Offset, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// Decode reads one instruction from d. An opcode outside the catalog fails
// with an unknown_opcode error after consuming only the opcode byte.
// Operand errors carry the instruction and operand name as their path.
func Decode(d *term.Decoder) (Operation, error) {
	b, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	info := table[b]
	if info == nil {
		return nil, errors.UnknownOpcode(errors.PhaseDecode, b)
	}

	a := make(args, len(info.Operands))
	for i, operand := range info.Operands {
		t, err := d.Decode()
		if err != nil {
			return nil, errors.WithPath(err, info.Name, operand.Name)
		}
		if err := operand.Kind.check(t); err != nil {
			return nil, errors.WithPath(err, info.Name, operand.Name)
		}
		a[i] = t
	}
	return info.build(info.Code, a), nil
}

// DecodeBytes decodes exactly one instruction from data. Trailing bytes are
// an error.
func DecodeBytes(data []byte) (Operation, error) {
	d := term.NewDecoder(data)
	o, err := Decode(d)
	if err != nil {
		return nil, err
	}
	if d.Len() != 0 {
		return nil, errors.InvalidData(errors.PhaseDecode, nil,
			fmt.Sprintf("%d trailing bytes after %s", d.Len(), Name(o)))
	}
	return o, nil
}

// DecodeStream decodes instructions until data is exhausted. The first
// failure aborts the stream and is returned as a *StreamError.
func DecodeStream(data []byte) ([]Operation, error) {
	return decodeStream(context.Background(), data)
}

func decodeStream(ctx context.Context, data []byte) ([]Operation, error) {
	d := term.NewDecoder(data)
	ops := make([]Operation, 0, len(data)/4)
	for d.Len() > 0 {
		if len(ops)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		offset := d.Offset()
		o, err := Decode(d)
		if err != nil {
			Logger().Debug("decode failed",
				zap.Int("index", len(ops)),
				zap.Int("offset", offset),
				zap.Error(err))
			return nil, &StreamError{Err: err, Index: len(ops), Offset: offset}
		}
		if ce := Logger().Check(zap.DebugLevel, "decoded instruction"); ce != nil {
			ce.Write(zap.Int("offset", offset), zap.Stringer("opcode", o.Opcode()))
		}
		ops = append(ops, o)
	}
	return ops, nil
}

// DecodeAll decodes independent streams using up to workers goroutines.
// Results are index aligned with streams. workers <= 0 means one worker
// per stream.
func DecodeAll(ctx context.Context, streams [][]byte, workers int) ([][]Operation, error) {
	out := make([][]Operation, len(streams))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, data := range streams {
		g.Go(func() error {
			ops, err := decodeStream(ctx, data)
			if err != nil {
				return fmt.Errorf("stream %d: %w", i, err)
			}
			out[i] = ops
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	Logger().Debug("decoded streams", zap.Int("streams", len(streams)), zap.Int("workers", workers))
	return out, nil
}
