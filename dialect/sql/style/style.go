package style

import (
	"context"
	"fmt"
	"reflect"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/syssam/sqlstyle/dialect"
)

// Default limits.
const (
	DefaultMaxListSize          = 1000
	DefaultMaxLiteralLength     = 4000
	DefaultLargeStringThreshold = 4000
	DefaultBindMarker           = ":"
	DefaultPlainMarker          = "&"
)

// Config holds the feature flags of a Style. It is copied into the Style on
// construction and never changes afterwards.
type Config struct {
	// Dialect is the dialect name the style renders for.
	Dialect string `yaml:"dialect" koanf:"dialect"`
	// BlobEnabled routes byte slices to Blob instead of LongVarBinary.
	BlobEnabled bool `yaml:"blob_enabled" koanf:"blob_enabled"`
	// ClobEnabled routes large strings to Clob instead of LongVarChar.
	ClobEnabled bool `yaml:"clob_enabled" koanf:"clob_enabled"`
	// LargeStringThreshold is the rune count above which a string is large.
	LargeStringThreshold int `yaml:"large_string_threshold" koanf:"large_string_threshold"`
	// MaxListSize is the maximum number of elements in one IN list.
	MaxListSize int `yaml:"max_list_size" koanf:"max_list_size"`
	// MaxLiteralLength is the rune count at which string literals are truncated.
	MaxLiteralLength int `yaml:"max_literal_length" koanf:"max_literal_length"`
	// DecimalConversion is applied to NUMERIC and DECIMAL columns on read.
	DecimalConversion DecimalConversion `yaml:"decimal_conversion" koanf:"decimal_conversion"`
	// BindMarker prefixes bind names in rendered fragments.
	BindMarker string `yaml:"bind_marker" koanf:"bind_marker"`
	// PlainMarker marks a bind name that is an already rendered literal.
	PlainMarker string `yaml:"plain_marker" koanf:"plain_marker"`
}

// DefaultConfig returns the configuration used by New without options.
func DefaultConfig() Config {
	return Config{
		Dialect:              dialect.Oracle,
		BlobEnabled:          true,
		ClobEnabled:          true,
		LargeStringThreshold: DefaultLargeStringThreshold,
		MaxListSize:          DefaultMaxListSize,
		MaxLiteralLength:     DefaultMaxLiteralLength,
		DecimalConversion:    DecimalNone,
		BindMarker:           DefaultBindMarker,
		PlainMarker:          DefaultPlainMarker,
	}
}

// Validate reports configuration values a Style cannot work with.
func (c Config) Validate() error {
	switch {
	case !dialect.Valid(c.Dialect):
		return fmt.Errorf("style: unknown dialect %q", c.Dialect)
	case c.MaxListSize < 1:
		return fmt.Errorf("style: max list size must be positive, got %d", c.MaxListSize)
	case c.MaxLiteralLength < 1:
		return fmt.Errorf("style: max literal length must be positive, got %d", c.MaxLiteralLength)
	case c.LargeStringThreshold < 0:
		return fmt.Errorf("style: large string threshold must not be negative, got %d", c.LargeStringThreshold)
	case c.BindMarker == "":
		return fmt.Errorf("style: bind marker must not be empty")
	case utf8.RuneCountInString(c.PlainMarker) != 1:
		return fmt.Errorf("style: plain marker must be one character, got %q", c.PlainMarker)
	}
	return c.DecimalConversion.validate()
}

// Style compiles predicates into SQL fragments and marshals values between Go
// and the database driver. A Style is immutable and safe for concurrent use.
type Style struct {
	cfg Config
	log *zap.Logger
}

// Option configures a Style.
type Option func(*Style)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(s *Style) {
		s.cfg = cfg
	}
}

// WithBlob enables or disables BLOB binds for byte slices.
func WithBlob(enabled bool) Option {
	return func(s *Style) {
		s.cfg.BlobEnabled = enabled
	}
}

// WithClob enables or disables CLOB binds for large strings.
func WithClob(enabled bool) Option {
	return func(s *Style) {
		s.cfg.ClobEnabled = enabled
	}
}

// WithMaxListSize sets the maximum number of elements in one IN list.
func WithMaxListSize(n int) Option {
	return func(s *Style) {
		s.cfg.MaxListSize = n
	}
}

// WithLargeStringThreshold sets the rune count above which strings are large.
func WithLargeStringThreshold(n int) Option {
	return func(s *Style) {
		s.cfg.LargeStringThreshold = n
	}
}

// WithMaxLiteralLength sets the rune count at which literals are truncated.
func WithMaxLiteralLength(n int) Option {
	return func(s *Style) {
		s.cfg.MaxLiteralLength = n
	}
}

// WithDecimalConversion sets the conversion applied to decimal columns.
func WithDecimalConversion(dc DecimalConversion) Option {
	return func(s *Style) {
		s.cfg.DecimalConversion = dc
	}
}

// WithLogger sets the logger for truncation and literal warnings.
func WithLogger(l *zap.Logger) Option {
	return func(s *Style) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a Style configured by opts on top of DefaultConfig.
func New(opts ...Option) (*Style, error) {
	s := &Style{
		cfg: DefaultConfig(),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	s.log = s.log.With(zap.String("dialect", s.cfg.Dialect))
	return s, nil
}

// MustNew is like New but panics on an invalid configuration.
func MustNew(opts ...Option) *Style {
	s, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Config returns a copy of the style configuration.
func (s *Style) Config() Config { return s.cfg }

// Dialect returns the dialect name.
func (s *Style) Dialect() string { return s.cfg.Dialect }

// IsBlobEnabled reports whether byte slices are bound as BLOB.
func (s *Style) IsBlobEnabled() bool { return s.cfg.BlobEnabled }

// IsClobEnabled reports whether large strings are bound as CLOB.
func (s *Style) IsClobEnabled() bool { return s.cfg.ClobEnabled }

// IsLargeString reports whether str exceeds the large string threshold.
func (s *Style) IsLargeString(str string) bool {
	// Fast path: a string can not hold more runes than bytes.
	if len(str) <= s.cfg.LargeStringThreshold {
		return false
	}
	return utf8.RuneCountInString(str) > s.cfg.LargeStringThreshold
}

// MaxListSize returns the maximum number of elements in one IN list.
func (s *Style) MaxListSize() int { return s.cfg.MaxListSize }

// Pinger is implemented by *sql.DB and *sql.Conn.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// TestConnection is called after a connection has been created. The base
// style accepts every connection.
func (s *Style) TestConnection(context.Context, Pinger) error { return nil }

// Commit is called after a transaction committed.
func (s *Style) Commit() {}

// Rollback is called after a transaction rolled back.
func (s *Style) Rollback() {}

// OutputRegistrar is a statement with output parameters.
type OutputRegistrar interface {
	RegisterOutParameter(index int, code TypeCode) error
}

// RegisterOutput registers the output parameter at index with the type code
// of t.
func (s *Style) RegisterOutput(stmt OutputRegistrar, index int, t reflect.Type) error {
	if t == nil {
		return fmt.Errorf("%w: index %d", ErrNilOutputType, index)
	}
	return stmt.RegisterOutParameter(index, s.TypeCodeFor(t))
}

// TypeCodeFor returns the type code for values of type t. Unlike
// BuildBindFor it never fails: unknown types map to Numeric.
func (s *Style) TypeCodeFor(t reflect.Type) TypeCode {
	_, t = indirect(nil, t)
	if t == nil {
		return Null
	}
	switch kindOf(t) {
	case KindTimestamp:
		return Timestamp
	case KindDate:
		return Date
	case KindDouble:
		return Double
	case KindFloat:
		return Float
	case KindInteger, KindBool, KindTriState:
		return Integer
	case KindBigInt:
		return BigInt
	case KindDecimal:
		return Numeric
	case KindChar, KindString, KindRunes, KindUUID:
		return VarChar
	case KindBytes:
		if s.cfg.BlobEnabled {
			return Blob
		}
		return LongVarBinary
	case KindBlob:
		return Blob
	case KindClob:
		return Clob
	case KindArray:
		return Array
	}
	return Numeric
}
