//go:build wasm

// Package wasmhost is the embedding boundary described in spec §4.8: a
// fixed-size byte window shared with the host JS runtime, through which
// index bytes are pushed in chunks and queries are exchanged, without ever
// marshaling a whole index or a whole result set across the js.Value
// boundary at once. Grounded on sqldef's web/sqldef-wasm.go, which
// registers a single js.FuncOf callback on js.Global() and blocks main()
// on a channel forever; this package does the same with a small set of
// named functions instead of one.
package wasmhost

import (
	"strings"
	"syscall/js"

	"github.com/valyala/bytebufferpool"

	"github.com/thekorn/fastfilter-search/textindex"
)

// WindowSize is the size of the shared byte window in bytes. The host
// writes index chunks and query text into this window before calling the
// corresponding exported function; results are written back into it.
const WindowSize = 16384

var window [WindowSize]byte

var (
	pending = bytebufferpool.Get() // accumulates pushed index chunks before init
	index   *textindex.TextIndex
)

// pushIndexChunk copies the first n bytes of the shared window into the
// pending buffer. The host calls this repeatedly to stream an index
// larger than WindowSize before calling Init.
func pushIndexChunk(this js.Value, args []js.Value) interface{} {
	n := args[0].Int()
	pending.Write(window[:n])
	return nil
}

// jsInit builds the TextIndex from everything accumulated by pushIndexChunk
// so far. args[0] and args[1] are the Language and CharEnc the index was
// built with, since that configuration isn't part of the on-disk format.
func jsInit(this js.Value, args []js.Value) interface{} {
	language := args[0].String()
	charenc := args[1].String()

	ti, err := textindex.Loads(pending.Bytes(), textindex.Options{
		Language: language,
		CharEnc:  charenc,
	})
	if err != nil {
		hostLog("wasmhost: init: " + err.Error())
		return false
	}
	index = ti
	bytebufferpool.Put(pending)
	pending = nil
	return true
}

// jsSearch reads a query string out of window[queryOffset:queryOffset+queryLen],
// runs it against the index with Any semantics, and writes the matching
// documents back into window newline-separated, truncated to WindowSize.
// It returns the number of bytes written.
func jsSearch(this js.Value, args []js.Value) interface{} {
	if index == nil {
		hostLog("wasmhost: search called before init")
		return 0
	}
	queryOffset := args[0].Int()
	queryLen := args[1].Int()
	query := string(window[queryOffset : queryOffset+queryLen])

	var matches []string
	_, err := index.Query(query, func(text string) {
		matches = append(matches, text)
	}, textindex.DefaultQueryOptions)
	if err != nil {
		hostLog("wasmhost: search: " + err.Error())
		return 0
	}

	out := strings.Join(matches, "\n")
	n := copy(window[:], out)
	return n
}

// hostLog forwards a diagnostic string to the host's console via the
// _fastfilterLog global, if the host registered one.
func hostLog(msg string) {
	fn := js.Global().Get("_fastfilterLog")
	if fn.Type() != js.TypeFunction {
		return
	}
	fn.Invoke(msg)
}

// Run registers the exported functions on the JS global object and blocks
// forever, keeping the wasm instance alive for the host to call into.
func Run() {
	js.Global().Set("_fastfilterPushIndexChunk", js.FuncOf(pushIndexChunk))
	js.Global().Set("_fastfilterInit", js.FuncOf(jsInit))
	js.Global().Set("_fastfilterSearch", js.FuncOf(jsSearch))
	js.Global().Set("_fastfilterWindowSize", js.ValueOf(WindowSize))

	c := make(chan struct{})
	<-c
}
