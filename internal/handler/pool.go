package handler

import (
	"bytes"
	"sync"
)

// bufferPool recycles encode buffers across responses. Stats and
// leaderboard payloads are small, so 512 bytes covers the common case
// without a regrow.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// putBuffer resets buf before returning it so stale response bytes
// never leak into the next request.
func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
