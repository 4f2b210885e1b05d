package bitop

import (
	"errors"

	"github.com/XwanXuanX/Misim/translate"
)

var f = translate.From

var (
	ErrBitRange = errors.New(f("bit position out of range"))
)
