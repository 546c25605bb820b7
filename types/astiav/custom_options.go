// Package astiav converts avinterp types to their go-astiav counterparts.
package astiav

import (
	"context"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avinterp/internal"
	"github.com/xaionaro-go/avinterp/logger"
	"github.com/xaionaro-go/avinterp/types"
)

func DictionaryItemsToAstiav(
	ctx context.Context,
	s types.DictionaryItems,
) *astiav.Dictionary {
	if s == nil {
		return nil
	}

	result := astiav.NewDictionary()
	internal.SetFinalizerFree(ctx, result)
	for _, opt := range s.Deduplicate() {
		logger.Tracef(ctx, "setting custom option: %s=%s", opt.Key, opt.Value)
		if err := result.Set(opt.Key, opt.Value, 0); err != nil {
			logger.Errorf(ctx, "unable to set option %s=%s: %v", opt.Key, opt.Value, err)
		}
	}
	return result
}
