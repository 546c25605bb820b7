package frame

import (
	"time"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avinterp/types"
	avtypes "github.com/xaionaro-go/avinterp/types/astiav"
)

// Commons is a frame together with the properties of the stream it belongs
// to.
type Commons struct {
	*astiav.Frame
	StreamIndex int
	TimeBase    astiav.Rational
	FrameRate   astiav.Rational
}

func (f *Commons) GetStreamIndex() int {
	return f.StreamIndex
}

func (f *Commons) GetTimeBase() astiav.Rational {
	return f.TimeBase
}

func (f *Commons) GetFrameRate() astiav.Rational {
	return f.FrameRate
}

func (f *Commons) GetPTS() int64 {
	return f.Frame.Pts()
}

func (f *Commons) SetPTS(v int64) {
	f.Frame.SetPts(v)
}

func (f *Commons) GetPTSAsDuration() time.Duration {
	return types.PTSToDuration(f.Frame.Pts(), avtypes.RationalFromAstiav(f.TimeBase))
}

func (f *Commons) GetResolution() types.Resolution {
	return types.Resolution{
		Width:  uint32(f.Frame.Width()),
		Height: uint32(f.Frame.Height()),
	}
}

// Input is a decoded frame entering a kernel.
type Input Commons

func BuildInput(
	f *astiav.Frame,
	streamIndex int,
	timeBase astiav.Rational,
	frameRate astiav.Rational,
) Input {
	return Input{
		Frame:       f,
		StreamIndex: streamIndex,
		TimeBase:    timeBase,
		FrameRate:   frameRate,
	}
}

func (f *Input) GetStreamIndex() int             { return (*Commons)(f).GetStreamIndex() }
func (f *Input) GetTimeBase() astiav.Rational    { return (*Commons)(f).GetTimeBase() }
func (f *Input) GetFrameRate() astiav.Rational   { return (*Commons)(f).GetFrameRate() }
func (f *Input) GetPTS() int64                   { return (*Commons)(f).GetPTS() }
func (f *Input) GetPTSAsDuration() time.Duration { return (*Commons)(f).GetPTSAsDuration() }
func (f *Input) GetResolution() types.Resolution { return (*Commons)(f).GetResolution() }

// Output is a frame produced by a kernel; the receiver owns it and must
// return it to Pool once done.
type Output Commons

func BuildOutput(
	f *astiav.Frame,
	streamIndex int,
	timeBase astiav.Rational,
	frameRate astiav.Rational,
) Output {
	return Output{
		Frame:       f,
		StreamIndex: streamIndex,
		TimeBase:    timeBase,
		FrameRate:   frameRate,
	}
}

func (f *Output) GetStreamIndex() int             { return (*Commons)(f).GetStreamIndex() }
func (f *Output) GetTimeBase() astiav.Rational    { return (*Commons)(f).GetTimeBase() }
func (f *Output) GetFrameRate() astiav.Rational   { return (*Commons)(f).GetFrameRate() }
func (f *Output) GetPTS() int64                   { return (*Commons)(f).GetPTS() }
func (f *Output) SetPTS(v int64)                  { (*Commons)(f).SetPTS(v) }
func (f *Output) GetPTSAsDuration() time.Duration { return (*Commons)(f).GetPTSAsDuration() }
func (f *Output) GetResolution() types.Resolution { return (*Commons)(f).GetResolution() }
