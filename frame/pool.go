// Package frame provides helpers for handling video frames.
package frame

import (
	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avinterp/pool"
)

var Pool = pool.NewPool(
	astiav.AllocFrame,
	func(f *astiav.Frame) { f.Unref() },
	func(f *astiav.Frame) { f.Free() },
)

func CloneAsReferenced(src *astiav.Frame) *astiav.Frame {
	dst := Pool.Get()
	if err := dst.Ref(src); err != nil {
		Pool.Put(dst)
		panic(err)
	}
	return dst
}

func CloneAsWritable(src *astiav.Frame) (*astiav.Frame, error) {
	dst := CloneAsReferenced(src)
	if err := dst.MakeWritable(); err != nil {
		Pool.Put(dst)
		return nil, err
	}
	return dst, nil
}
