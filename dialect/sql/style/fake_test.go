package style

import (
	"errors"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// call is one recorded Statement setter call.
type call struct {
	method string
	index  int
	code   TypeCode
	value  any
	scale  int32
	length int64
}

// fakeStatement records setter calls. Setters named in fail return the
// mapped error; SetNull failures are keyed by "SetNull:" plus the type code.
type fakeStatement struct {
	calls []call
	fail  map[string]error
}

func (s *fakeStatement) record(key string, c call) error {
	if err := s.fail[key]; err != nil {
		return err
	}
	s.calls = append(s.calls, c)
	return nil
}

func (s *fakeStatement) SetNull(index int, code TypeCode) error {
	return s.record("SetNull:"+code.String(), call{method: "SetNull", index: index, code: code})
}

func (s *fakeStatement) SetObject(index int, v any, code TypeCode) error {
	return s.record("SetObject", call{method: "SetObject", index: index, code: code, value: v})
}

func (s *fakeStatement) SetScaledObject(index int, v any, code TypeCode, scale int32) error {
	return s.record("SetScaledObject", call{method: "SetScaledObject", index: index, code: code, value: v, scale: scale})
}

func (s *fakeStatement) SetBytes(index int, b []byte) error {
	return s.record("SetBytes", call{method: "SetBytes", index: index, value: b})
}

func (s *fakeStatement) SetCharacterStream(index int, r io.Reader, length int64) error {
	if err := s.fail["SetCharacterStream"]; err != nil {
		return err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return s.record("", call{method: "SetCharacterStream", index: index, value: string(b), length: length})
}

func (s *fakeStatement) SetBinaryStream(index int, r io.Reader, length int64) error {
	if err := s.fail["SetBinaryStream"]; err != nil {
		return err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return s.record("", call{method: "SetBinaryStream", index: index, value: b, length: length})
}

func (s *fakeStatement) SetClob(index int, c ClobHandle) error {
	return s.record("SetClob", call{method: "SetClob", index: index, value: c})
}

func (s *fakeStatement) SetBlob(index int, b BlobHandle) error {
	return s.record("SetBlob", call{method: "SetBlob", index: index, value: b})
}

// fakeRow serves column values by index. A nil column is NULL; columns listed
// in null report NULL even though a value is returned.
type fakeRow struct {
	cols    map[int]any
	null    map[int]bool
	getter  string
	wasNull bool
}

func (r *fakeRow) get(name string, index int) any {
	v := r.cols[index]
	r.getter = name
	r.wasNull = v == nil || r.null[index]
	return v
}

func (r *fakeRow) Decimal(index int) (decimal.Decimal, error) {
	d, _ := r.get("Decimal", index).(decimal.Decimal)
	return d, nil
}

func (r *fakeRow) Int64(index int) (int64, error) {
	n, _ := r.get("Int64", index).(int64)
	return n, nil
}

func (r *fakeRow) Float64(index int) (float64, error) {
	f, _ := r.get("Float64", index).(float64)
	return f, nil
}

func (r *fakeRow) String(index int) (string, error) {
	s, _ := r.get("String", index).(string)
	return s, nil
}

func (r *fakeRow) Timestamp(index int) (time.Time, error) {
	t, _ := r.get("Timestamp", index).(time.Time)
	return t, nil
}

func (r *fakeRow) Time(index int) (time.Time, error) {
	t, _ := r.get("Time", index).(time.Time)
	return t, nil
}

func (r *fakeRow) Bytes(index int) ([]byte, error) {
	b, _ := r.get("Bytes", index).([]byte)
	return b, nil
}

func (r *fakeRow) Clob(index int) (ClobHandle, error) {
	c, _ := r.get("Clob", index).(ClobHandle)
	return c, nil
}

func (r *fakeRow) Blob(index int) (BlobHandle, error) {
	b, _ := r.get("Blob", index).(BlobHandle)
	return b, nil
}

func (r *fakeRow) Object(index int, _ ColumnMeta) (any, error) {
	return r.get("Object", index), nil
}

func (r *fakeRow) WasNull() bool { return r.wasNull }

// unsizedClob advertises no length.
type unsizedClob string

func (c unsizedClob) Length() (int64, error) { return 0, nil }

func (c unsizedClob) CharacterStream() (io.ReadCloser, error) {
	return StringClob(c).CharacterStream()
}

var errBrokenStream = errors.New("broken stream")

// brokenClob fails while its stream is read.
type brokenClob struct{ n int64 }

func (c brokenClob) Length() (int64, error) { return c.n, nil }

func (c brokenClob) CharacterStream() (io.ReadCloser, error) {
	return io.NopCloser(io.MultiReader(
		io.LimitReader(zeroReader{}, 1),
		errReader{errBrokenStream},
	)), nil
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = '0'
	}
	return len(p), nil
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
