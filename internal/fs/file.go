package fs

import "github.com/Direktor799/unnamed-os/internal/errno"

// File is an open file's read/write cursor over an Inode, the in-memory
// analogue of the teacher's Fd_t plus its Fops vtable, collapsed into one
// concrete type since this file system has only one kind of backing store.
type File struct {
	Node   *Inode
	offset int
}

// NewFile opens node at offset zero.
func NewFile(node *Inode) *File { return &File{Node: node} }

// Read copies up to len(buf) bytes starting at the file's cursor and
// advances it.
func (fp *File) Read(buf []byte) (int, errno.Errno) {
	if fp.Node.Dir {
		return 0, errno.EISDIR
	}
	if fp.offset >= len(fp.Node.Data) {
		return 0, errno.Ok
	}
	n := copy(buf, fp.Node.Data[fp.offset:])
	fp.offset += n
	return n, errno.Ok
}

// Write copies buf into the file at the cursor, growing it if necessary,
// and advances the cursor.
func (fp *File) Write(buf []byte) (int, errno.Errno) {
	if fp.Node.Dir {
		return 0, errno.EISDIR
	}
	end := fp.offset + len(buf)
	if end > len(fp.Node.Data) {
		grown := make([]byte, end)
		copy(grown, fp.Node.Data)
		fp.Node.Data = grown
	}
	n := copy(fp.Node.Data[fp.offset:end], buf)
	fp.offset += n
	return n, errno.Ok
}
