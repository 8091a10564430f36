package tx

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
	"unicode/utf8"

	"github.com/mr-tron/base58"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/weisyn/ethwallet/pkg/types"
)

// 数据编码名称
const (
	EncASCII    = "ascii"
	EncUTF8     = "utf8"
	EncUTF8Dash = "utf-8"
	EncUTF16LE  = "utf16le"
	EncUTF16LED = "utf-16le"
	EncUCS2     = "ucs2"
	EncUCS2Dash = "ucs-2"
	EncBase64   = "base64"
	EncLatin1   = "latin1"
	EncBinary   = "binary"
	EncHex      = "hex"
	EncBase58   = "base58"
)

var encodingNames = []string{
	EncASCII, EncUTF8, EncUTF8Dash, EncUTF16LE, EncUTF16LED, EncUCS2, EncUCS2Dash,
	EncBase64, EncLatin1, EncBinary, EncHex, EncBase58,
}

// Encodings 返回支持的数据编码名称
func Encodings() []string {
	return append([]string(nil), encodingNames...)
}

// IsEncoding 判断编码名称是否受支持
func IsEncoding(name string) bool {
	for _, n := range encodingNames {
		if n == name {
			return true
		}
	}
	return false
}

func utf16le() encoding.Encoding {
	return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
}

// EncodeData 把文本按编码转换为字节
//
// ascii / latin1 / binary 中无法表示的字符返回 ValidationError，不做截断。
func EncodeData(data, enc string) ([]byte, error) {
	const op = "tx.EncodeData"
	switch enc {
	case EncUTF8, EncUTF8Dash:
		return []byte(data), nil
	case EncASCII:
		for i, r := range data {
			if r >= utf8.RuneSelf {
				return nil, types.Validationf(op, "character %q at offset %d is not ascii", r, i)
			}
		}
		return []byte(data), nil
	case EncLatin1, EncBinary:
		b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(data))
		if err != nil {
			return nil, types.Validationf(op, "data is not representable in latin1: %v", err)
		}
		return b, nil
	case EncUTF16LE, EncUTF16LED, EncUCS2, EncUCS2Dash:
		b, err := utf16le().NewEncoder().Bytes([]byte(data))
		if err != nil {
			return nil, types.Validationf(op, "utf-16 encoding failed: %v", err)
		}
		return b, nil
	case EncBase64:
		b, err := decodeBase64(data)
		if err != nil {
			return nil, types.Validationf(op, "invalid base64 data: %v", err)
		}
		return b, nil
	case EncHex:
		s := strings.TrimPrefix(strings.TrimPrefix(data, "0x"), "0X")
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, types.Validationf(op, "invalid hex data: %v", err)
		}
		return b, nil
	case EncBase58:
		if data == "" {
			return []byte{}, nil
		}
		b, err := base58.Decode(data)
		if err != nil {
			return nil, types.Validationf(op, "invalid base58 data: %v", err)
		}
		return b, nil
	default:
		return nil, types.Validationf(op, "unknown data encoding %q", enc)
	}
}

// decodeBase64 接受标准与 URL 字母表，填充可选
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimRight(s, "=")
	if strings.ContainsAny(s, "-_") {
		return base64.RawURLEncoding.DecodeString(s)
	}
	return base64.RawStdEncoding.DecodeString(s)
}

// DecodeData 把字节按编码还原为文本，hex 结果带 0x 前缀（空数据除外）
func DecodeData(data []byte, enc string) (string, error) {
	const op = "tx.DecodeData"
	switch enc {
	case EncUTF8, EncUTF8Dash:
		return strings.ToValidUTF8(string(data), "�"), nil
	case EncASCII:
		out := make([]byte, len(data))
		for i, b := range data {
			out[i] = b & 0x7f
		}
		return string(out), nil
	case EncLatin1, EncBinary:
		b, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", types.Validationf(op, "latin1 decoding failed: %v", err)
		}
		return string(b), nil
	case EncUTF16LE, EncUTF16LED, EncUCS2, EncUCS2Dash:
		b, err := utf16le().NewDecoder().Bytes(data)
		if err != nil {
			return "", types.Validationf(op, "utf-16 decoding failed: %v", err)
		}
		return string(b), nil
	case EncBase64:
		return base64.StdEncoding.EncodeToString(data), nil
	case EncHex:
		if len(data) == 0 {
			return "", nil
		}
		return "0x" + hex.EncodeToString(data), nil
	case EncBase58:
		return base58.Encode(data), nil
	default:
		return "", types.Validationf(op, "unknown data encoding %q", enc)
	}
}
