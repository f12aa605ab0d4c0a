package cdf

// Type identifies a variable's element encoding. The values match the CDF
// data type codes so a storage engine can pass them through unchanged.
type Type int

// Element types and their fixed byte widths.
const (
	Int1    Type = 1  // 1-byte signed integer
	Int2    Type = 2  // 2-byte signed integer
	Int4    Type = 4  // 4-byte signed integer
	Int8    Type = 8  // 8-byte signed integer
	UInt1   Type = 11 // 1-byte unsigned integer
	UInt2   Type = 12 // 2-byte unsigned integer
	UInt4   Type = 14 // 4-byte unsigned integer
	Real4   Type = 21 // 4-byte IEEE float
	Real8   Type = 22 // 8-byte IEEE float
	Epoch   Type = 31 // 8-byte millisecond timestamp
	Epoch16 Type = 32 // two 8-byte values: seconds + picoseconds
	Byte    Type = 41 // 1-byte signed integer
	Float   Type = 44 // alias of Real4
	Double  Type = 45 // alias of Real8
	Char    Type = 51 // fixed-width character block
	UChar   Type = 52 // fixed-width character block
)

// Size returns the fixed byte width of one element. Character types report
// the per-character width; the variable's declared element count scales it.
func (t Type) Size() int {
	switch t {
	case Int1, UInt1, Byte, Char, UChar:
		return 1
	case Int2, UInt2:
		return 2
	case Int4, UInt4, Real4, Float:
		return 4
	case Int8, Real8, Epoch, Double:
		return 8
	case Epoch16:
		return 16
	}
	return 0
}

func (t Type) String() string {
	switch t {
	case Int1:
		return "CDF_INT1"
	case Int2:
		return "CDF_INT2"
	case Int4:
		return "CDF_INT4"
	case Int8:
		return "CDF_INT8"
	case UInt1:
		return "CDF_UINT1"
	case UInt2:
		return "CDF_UINT2"
	case UInt4:
		return "CDF_UINT4"
	case Real4:
		return "CDF_REAL4"
	case Real8:
		return "CDF_REAL8"
	case Epoch:
		return "CDF_EPOCH"
	case Epoch16:
		return "CDF_EPOCH16"
	case Byte:
		return "CDF_BYTE"
	case Float:
		return "CDF_FLOAT"
	case Double:
		return "CDF_DOUBLE"
	case Char:
		return "CDF_CHAR"
	case UChar:
		return "CDF_UCHAR"
	}
	return "CDF_UNKNOWN"
}

func (t Type) isChar() bool { return t == Char || t == UChar }
