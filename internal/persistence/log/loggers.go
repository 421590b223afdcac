package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"minebot.ai/internal/planning/temporal"
)

// Record is one assessed solve attempt. Digest identifies the attempt's
// content; AttemptID and RecordedAt are bookkeeping and never hashed.
type Record struct {
	AttemptID  string              `json:"attempt_id"`
	Digest     string              `json:"digest"`
	RecordedAt string              `json:"recorded_at"`
	Duplicate  bool                `json:"duplicate,omitempty"`
	Assessment temporal.Assessment `json:"assessment"`
}

// JSONLZstdWriter appends JSON lines to a zstd stream. Each Open starts a
// new zstd frame at the end of the file; readers handle concatenated frames.
type JSONLZstdWriter struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func OpenJSONLZstd(path string) (*JSONLZstdWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &JSONLZstdWriter{f: f, enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}, nil
}

func (w *JSONLZstdWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return os.ErrClosed
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return nil
	}
	err1 := w.w.Flush()
	err2 := w.enc.Close()
	err3 := w.f.Close()
	w.w, w.enc, w.f = nil, nil, nil
	return errors.Join(err1, err2, err3)
}

// AssessmentLog records assessed attempts for offline replay and diffing.
type AssessmentLog struct{ w *JSONLZstdWriter }

func OpenAssessmentLog(path string) (*AssessmentLog, error) {
	w, err := OpenJSONLZstd(path)
	if err != nil {
		return nil, err
	}
	return &AssessmentLog{w: w}, nil
}

func (l *AssessmentLog) WriteRecord(r Record) error { return l.w.Write(r) }
func (l *AssessmentLog) Close() error               { return l.w.Close() }

// ReadRecords decodes every record in a log written by AssessmentLog.
func ReadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []Record
	jd := json.NewDecoder(dec)
	for {
		var r Record
		if err := jd.Decode(&r); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
		out = append(out, r)
	}
}
