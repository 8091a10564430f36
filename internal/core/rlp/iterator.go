package rlp

// ListIterator 逐个遍历列表内容中的已编码元素
type ListIterator struct {
	data []byte
	next []byte
	err  error
}

// NewListIterator 为已编码的列表创建迭代器
func NewListIterator(data []byte) (*ListIterator, error) {
	k, content, rest, err := Split(data)
	if err != nil {
		return nil, err
	}
	if k != List {
		return nil, ErrExpectedList
	}
	if len(rest) > 0 {
		return nil, ErrMoreThanOneValue
	}
	return newListIterator(content), nil
}

func newListIterator(content []byte) *ListIterator {
	return &ListIterator{data: content}
}

// Next 前进到下一个元素，出错或遍历完成时返回 false
func (it *ListIterator) Next() bool {
	if len(it.data) == 0 || it.err != nil {
		return false
	}
	_, t, c, err := readKind(it.data)
	if err != nil {
		it.err = err
		return false
	}
	it.next = it.data[:t+c]
	it.data = it.data[t+c:]
	return true
}

// Value 当前元素的完整编码
func (it *ListIterator) Value() []byte {
	return it.next
}

// Err 遍历中遇到的错误
func (it *ListIterator) Err() error {
	return it.err
}
