// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"reflect"
	"unsafe"

	jsoniter "github.com/json-iterator/go"

	"github.com/haliteii/engine/internal/engine"
)

// json is this package's jsoniter instance, configured and extended once at
// init time, mirroring server/jsoniter.go's pattern of a package-level
// pre-configured codec instead of calling encoding/json directly.
var json = func() jsoniter.API {
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(engine.EntityID{}).String(), encodeEntityID, neverEmptyEntityID)

	return jsoniter.Config{
		EscapeHTML:              false,
		SortMapKeys:             false,
		MarshalFloatWith6Digits: false,
		TagKey:                  "json",
	}.Froze()
}()

// encodeEntityID renders an EntityID as its compact String() form
// ("ship(player,index)" or "planet(index)")
// instead of the default {"Kind":...,"Player":...,"Index":...} object, so a
// transcript's event list stays cheap to read back.
func encodeEntityID(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	id := *(*engine.EntityID)(ptr)
	stream.WriteString(id.String())
}

func neverEmptyEntityID(unsafe.Pointer) bool { return false }

// Marshal serializes v (an Event, a Frame, or a Header) using this
// package's codec.
func Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
