package rlp

// Encode 编码一个节点
func Encode(it Item) []byte {
	return AppendEncoded(nil, it)
}

// AppendEncoded 把节点编码追加到 dst
func AppendEncoded(dst []byte, it Item) []byte {
	if it.kind == String {
		if len(it.str) == 1 && it.str[0] < offsetShortString {
			return append(dst, it.str[0])
		}
		dst = appendHeader(dst, offsetShortString, offsetLongString, uint64(len(it.str)))
		return append(dst, it.str...)
	}

	var content []byte
	for _, child := range it.items {
		content = AppendEncoded(content, child)
	}
	dst = appendHeader(dst, offsetShortList, offsetLongList, uint64(len(content)))
	return append(dst, content...)
}

// EncodeList 编码由给定节点组成的列表
func EncodeList(items ...Item) []byte {
	return Encode(NewList(items...))
}

func appendHeader(dst []byte, shortOffset, longOffset byte, size uint64) []byte {
	if size <= maxShortLength {
		return append(dst, shortOffset+byte(size))
	}
	sizeBytes := MinimalBytes(size)
	dst = append(dst, longOffset+byte(len(sizeBytes)))
	return append(dst, sizeBytes...)
}
