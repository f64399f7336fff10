package document

import (
	"bytes"
	"io"
	"os"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// 编码名称
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF8BOM = "utf-8-bom"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
	EncodingUnknown = "unknown"
)

type namedEncoding struct {
	name string
	enc  encoding.Encoding
}

// legacyEncodings 依次尝试的非 Unicode 编码
var legacyEncodings = []namedEncoding{
	{"gbk", simplifiedchinese.GBK},
	{"gb18030", simplifiedchinese.GB18030},
	{"big5", traditionalchinese.Big5},
	{"shift_jis", japanese.ShiftJIS},
	{"euc-jp", japanese.EUCJP},
	{"euc-kr", korean.EUCKR},
	{"windows-1252", charmap.Windows1252},
}

// ReadText 读取文件并转换为 UTF-8，返回文本与检测到的编码
func ReadText(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	text, enc := DecodeText(data)
	return text, enc, nil
}

// DecodeText 检测并转换文本编码；无法识别时按原样返回
func DecodeText(data []byte) (string, string) {
	// 如果是空数据，直接返回
	if len(data) == 0 {
		return "", EncodingUTF8
	}

	// UTF-8 BOM
	if bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		return string(data[3:]), EncodingUTF8BOM
	}

	// UTF-16 BOM
	if len(data) >= 2 {
		if data[0] == 0xFF && data[1] == 0xFE {
			if res, ok := decode(data[2:], xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM)); ok {
				return res, EncodingUTF16LE
			}
		} else if data[0] == 0xFE && data[1] == 0xFF {
			if res, ok := decode(data[2:], xunicode.UTF16(xunicode.BigEndian, xunicode.IgnoreBOM)); ok {
				return res, EncodingUTF16BE
			}
		}
	}

	if utf8.Valid(data) {
		return string(data), EncodingUTF8
	}

	// 尝试常见编码
	for _, ne := range legacyEncodings {
		if res, ok := decode(data, ne.enc); ok && isReasonableText(res) {
			return res, ne.name
		}
	}

	// 如果都失败了，返回原始数据
	return string(data), EncodingUnknown
}

func decode(data []byte, enc encoding.Encoding) (string, bool) {
	res, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil || !utf8.Valid(res) {
		return "", false
	}
	return string(res), true
}

// isReasonableText 超过 90% 是可打印字符的文本视为解码成功
func isReasonableText(text string) bool {
	if len(text) == 0 {
		return false
	}

	total, printable := 0, 0
	for _, r := range text {
		total++
		if r != utf8.RuneError && (unicode.IsPrint(r) || unicode.IsSpace(r)) {
			printable++
		}
	}
	return float64(printable)/float64(total) > 0.9
}
