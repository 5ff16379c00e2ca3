package style

import (
	"strconv"
	"strings"
)

// TypeCode identifies how a value travels to and from the database driver.
type TypeCode int8

// Driver type codes.
const (
	Null TypeCode = iota
	Bit
	TinyInt
	SmallInt
	Integer
	BigInt
	Float
	Real
	Double
	Numeric
	Decimal
	Char
	VarChar
	LongVarChar
	Date
	Time
	Timestamp
	Binary
	VarBinary
	LongVarBinary
	Blob
	Clob
	Array
	Other
)

var typeCodeNames = [...]string{
	Null:          "NULL",
	Bit:           "BIT",
	TinyInt:       "TINYINT",
	SmallInt:      "SMALLINT",
	Integer:       "INTEGER",
	BigInt:        "BIGINT",
	Float:         "FLOAT",
	Real:          "REAL",
	Double:        "DOUBLE",
	Numeric:       "NUMERIC",
	Decimal:       "DECIMAL",
	Char:          "CHAR",
	VarChar:       "VARCHAR",
	LongVarChar:   "LONGVARCHAR",
	Date:          "DATE",
	Time:          "TIME",
	Timestamp:     "TIMESTAMP",
	Binary:        "BINARY",
	VarBinary:     "VARBINARY",
	LongVarBinary: "LONGVARBINARY",
	Blob:          "BLOB",
	Clob:          "CLOB",
	Array:         "ARRAY",
	Other:         "OTHER",
}

// String returns the SQL name of the type code.
func (c TypeCode) String() string {
	if c < 0 || int(c) >= len(typeCodeNames) {
		return "TypeCode(" + strconv.Itoa(int(c)) + ")"
	}
	return typeCodeNames[c]
}

// IsInteger reports whether c belongs to the integer family.
func (c TypeCode) IsInteger() bool {
	switch c {
	case Bit, TinyInt, SmallInt, Integer, BigInt:
		return true
	}
	return false
}

// IsText reports whether c carries character data.
func (c TypeCode) IsText() bool {
	switch c {
	case Char, VarChar, LongVarChar, Clob:
		return true
	}
	return false
}

// IsBinary reports whether c carries raw bytes.
func (c TypeCode) IsBinary() bool {
	switch c {
	case Binary, VarBinary, LongVarBinary, Blob:
		return true
	}
	return false
}

// databaseTypes maps driver column type names onto type codes. Names are the
// ones reported by *sql.ColumnType.DatabaseTypeName for pq, mysql and sqlite.
var databaseTypes = map[string]TypeCode{
	"BIT":               Bit,
	"BOOL":              Bit,
	"BOOLEAN":           Bit,
	"TINYINT":           TinyInt,
	"UNSIGNED TINYINT":  TinyInt,
	"SMALLINT":          SmallInt,
	"UNSIGNED SMALLINT": SmallInt,
	"INT2":              SmallInt,
	"INT":               Integer,
	"INT4":              Integer,
	"INTEGER":           Integer,
	"MEDIUMINT":         Integer,
	"UNSIGNED INT":      Integer,
	"BIGINT":            BigInt,
	"INT8":              BigInt,
	"UNSIGNED BIGINT":   BigInt,
	"FLOAT":             Float,
	"FLOAT4":            Real,
	"REAL":              Real,
	"DOUBLE":            Double,
	"FLOAT8":            Double,
	"DOUBLE PRECISION":  Double,
	"NUMERIC":           Numeric,
	"NUMBER":            Numeric,
	"DECIMAL":           Decimal,
	"MONEY":             Decimal,
	"CHAR":              Char,
	"BPCHAR":            Char,
	"NCHAR":             Char,
	"VARCHAR":           VarChar,
	"VARCHAR2":          VarChar,
	"NVARCHAR":          VarChar,
	"NVARCHAR2":         VarChar,
	"UUID":              VarChar,
	"TEXT":              LongVarChar,
	"MEDIUMTEXT":        LongVarChar,
	"LONGTEXT":          LongVarChar,
	"LONG":              LongVarChar,
	"DATE":              Date,
	"TIME":              Time,
	"TIMETZ":            Time,
	"TIMESTAMP":         Timestamp,
	"TIMESTAMPTZ":       Timestamp,
	"DATETIME":          Timestamp,
	"BINARY":            Binary,
	"VARBINARY":         VarBinary,
	"BYTEA":             LongVarBinary,
	"LONGBLOB":          LongVarBinary,
	"MEDIUMBLOB":        LongVarBinary,
	"RAW":               VarBinary,
	"LONG RAW":          LongVarBinary,
	"BLOB":              Blob,
	"CLOB":              Clob,
	"NCLOB":             Clob,
}

// TypeCodeOf maps a driver column type name to a type code. Array types
// reported with a leading underscore (pq) or a trailing "[]" map to Array.
// Unknown names map to Other, which makes ReadBind use the generic read.
func TypeCodeOf(databaseTypeName string) TypeCode {
	name := strings.ToUpper(strings.TrimSpace(databaseTypeName))
	if c, ok := databaseTypes[name]; ok {
		return c
	}
	if strings.HasPrefix(name, "_") || strings.HasSuffix(name, "[]") {
		return Array
	}
	// Declared sizes such as VARCHAR(255) or NUMERIC(10,2).
	if i := strings.IndexByte(name, '('); i > 0 {
		if c, ok := databaseTypes[strings.TrimSpace(name[:i])]; ok {
			return c
		}
	}
	return Other
}
