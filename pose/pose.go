//Package pose records the poses accepted during a docking search as a
//compressed stream, one frame per accepted pose, so a search can be
//replayed or analyzed afterwards. The compression format is chosen
//from the file name: ".gz" is gzip, ".flate" is raw DEFLATE, anything
//else (".pose" by convention) is zstd.
package pose

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"

	dock "github.com/AspirinCode/idock"
)

//Writer appends pose frames to a compressed stream.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	writeable bool
	prec      int
}

//NewWriter creates the pose stream file name for poses of natoms heavy
//atoms. compressionLevel only applies to the gzip and flate formats.
func NewWriter(name string, natoms int, compressionLevel ...int) (*Writer, error) {
	level := flate.BestCompression
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	w := new(Writer)
	var err error
	w.f, err = os.Create(name)
	if err != nil {
		return nil, err
	}
	var newWriter func(io.Writer) (io.WriteCloser, error)
	switch {
	case strings.HasSuffix(name, ".gz"):
		newWriter = func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, level) }
	case strings.HasSuffix(name, ".flate"):
		newWriter = func(a io.Writer) (io.WriteCloser, error) { return flate.NewWriter(a, level) }
	default:
		newWriter = func(a io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		}
	}
	w.h, err = newWriter(w.f)
	if err != nil {
		w.f.Close()
		return nil, Error{"can't build compressor: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	w.natoms = natoms
	w.filename = name
	w.writeable = true
	w.prec = 3
	w.h.Write([]byte(fmt.Sprintf("** %d\n", natoms)))
	return w, nil
}

//Len returns the heavy-atom count per frame.
func (w *Writer) Len() int { return w.natoms }

//WNext appends one frame: the seed of the task that accepted the pose,
//its free energy, and the heavy-atom coordinates.
func (w *Writer) WNext(seed uint64, e float64, coords []dock.Vec3) error {
	if !w.writeable {
		return Error{StreamUnIniWrite, w.filename, []string{"WNext"}, true}
	}
	if coords == nil {
		return Error{NilCoordinates, w.filename, []string{"WNext"}, true}
	}
	if len(coords) != w.natoms {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", len(coords), w.natoms), w.filename, []string{"WNext"}, true}
	}
	w.h.Write([]byte(fmt.Sprintf("# %d %.6f\n", seed, e)))
	p := math.Pow(10, float64(w.prec))
	for _, c := range coords {
		w.h.Write([]byte(fmt.Sprintf("%d %d %d\n",
			int(math.RoundToEven(c[0]*p)),
			int(math.RoundToEven(c[1]*p)),
			int(math.RoundToEven(c[2]*p)))))
	}
	w.h.Write([]byte("*\n"))
	return nil
}

//Close flushes and closes the stream. The Writer can not be used after
//this call.
func (w *Writer) Close() {
	if w == nil || !w.writeable {
		return
	}
	w.h.Close()
	w.f.Close()
	w.writeable = false
}

//Trace wraps the writer into a dock.TraceFunc that can be shared by
//concurrent docking tasks.
func (w *Writer) Trace() dock.TraceFunc {
	var mu sync.Mutex
	return func(seed uint64, e float64, heavy []dock.Vec3) {
		mu.Lock()
		defer mu.Unlock()
		w.WNext(seed, e, heavy) //frames from different seeds interleave
	}
}

//Frame is one recorded pose.
type Frame struct {
	Seed   uint64
	E      float64
	Coords []dock.Vec3
}

//Reader replays a pose stream.
type Reader struct {
	f        *os.File
	z        io.Closer
	h        *bufio.Reader
	natoms   int
	filename string
	prec     int
	readable bool
}

//zstdql adapts zstd.Decoder, which lacks a Close() error, to io.Closer.
type zstdql struct {
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.Decoder.Close()
	return nil
}

//NewReader opens a pose stream written by NewWriter.
func NewReader(name string) (*Reader, error) {
	r := new(Reader)
	var err error
	r.f, err = os.Open(name)
	if err != nil {
		return nil, err
	}
	var raw io.Reader
	switch {
	case strings.HasSuffix(name, ".gz"):
		g, err := gzip.NewReader(r.f)
		if err != nil {
			r.f.Close()
			return nil, Error{err.Error(), name, []string{"NewReader"}, true}
		}
		r.z = g
		raw = g
	case strings.HasSuffix(name, ".flate"):
		fl := flate.NewReader(r.f)
		r.z = fl
		raw = fl
	default:
		z, err := zstd.NewReader(r.f)
		if err != nil {
			r.f.Close()
			return nil, Error{err.Error(), name, []string{"NewReader"}, true}
		}
		r.z = zstdql{z}
		raw = z
	}
	r.h = bufio.NewReader(raw)
	r.filename = name
	r.prec = 3
	line, err := r.h.ReadString('\n')
	if err != nil || !strings.HasPrefix(line, "** ") {
		r.Close()
		return nil, Error{WrongFormat, name, []string{"NewReader"}, true}
	}
	r.natoms, err = strconv.Atoi(strings.TrimSpace(line[3:]))
	if err != nil {
		r.Close()
		return nil, Error{WrongFormat, name, []string{"NewReader"}, true}
	}
	r.readable = true
	return r, nil
}

//Len returns the heavy-atom count per frame.
func (r *Reader) Len() int { return r.natoms }

//Next returns the next recorded pose, or an Error with message EOF
//when the stream ends.
func (r *Reader) Next() (*Frame, error) {
	if !r.readable {
		return nil, Error{StreamUnIniRead, r.filename, []string{"Next"}, true}
	}
	line, err := r.h.ReadString('\n')
	if err == io.EOF {
		return nil, Error{EOF, r.filename, []string{"Next"}, false}
	}
	if err != nil {
		return nil, Error{err.Error(), r.filename, []string{"Next"}, true}
	}
	fields := strings.Fields(line)
	if len(fields) != 3 || fields[0] != "#" {
		return nil, Error{WrongFormat, r.filename, []string{"Next"}, true}
	}
	fr := new(Frame)
	if fr.Seed, err = strconv.ParseUint(fields[1], 10, 64); err != nil {
		return nil, Error{WrongFormat, r.filename, []string{"Next"}, true}
	}
	if fr.E, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return nil, Error{WrongFormat, r.filename, []string{"Next"}, true}
	}
	p := math.Pow(10, float64(r.prec))
	fr.Coords = make([]dock.Vec3, r.natoms)
	for i := 0; i < r.natoms; i++ {
		line, err = r.h.ReadString('\n')
		if err != nil {
			return nil, Error{WrongFormat, r.filename, []string{"Next"}, true}
		}
		fields = strings.Fields(line)
		if len(fields) != 3 {
			return nil, Error{WrongFormat, r.filename, []string{"Next"}, true}
		}
		for j := 0; j < 3; j++ {
			v, err := strconv.Atoi(fields[j])
			if err != nil {
				return nil, Error{WrongFormat, r.filename, []string{"Next"}, true}
			}
			fr.Coords[i][j] = float64(v) / p
		}
	}
	line, err = r.h.ReadString('\n')
	if err != nil || !strings.HasPrefix(line, "*") {
		return nil, Error{WrongFormat, r.filename, []string{"Next"}, true}
	}
	return fr, nil
}

//Close closes the stream. The Reader can not be used after this call.
func (r *Reader) Close() {
	if r == nil {
		return
	}
	if r.z != nil {
		r.z.Close()
	}
	r.f.Close()
	r.readable = false
}

//Error is the error type of the pose package.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("pose stream %s error: %s", err.filename, err.message)
}

//Decorate Adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file the failing stream was associated to
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

//Messages for the Error type.
const (
	StreamUnIniRead  = "pose stream uninitialized to read"
	StreamUnIniWrite = "pose stream uninitialized to write"
	NilCoordinates   = "given nil coordinates"
	WrongFormat      = "wrong format in the pose stream or frame"
	EOF              = "EOF"
)
