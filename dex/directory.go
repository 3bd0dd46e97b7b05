package dex

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/dexmodel/dex/internal/binary"
	"github.com/wippyai/dexmodel/errors"
)

// DecodeDirectory decodes the annotations_directory_item at offset off of
// data, following its offsets into annotation_set_item,
// annotation_set_ref_list and annotation_item structures in the same buffer.
// Offsets are relative to the start of data; an offset of 0 means absent.
//
// Parameter annotations are flattened into one set per method, in parameter
// order. When ValidateOrdering is set the directory, every set and every
// annotation are checked for ascending order.
func (d *Decoder) DecodeDirectory(data []byte, off uint32) (*AnnotationsDirectory, error) {
	r, err := d.at(data, off, "annotations_directory_item")
	if err != nil {
		return nil, err
	}
	var hdr [4]uint32
	for i := range hdr {
		if hdr[i], err = r.ReadU32LE(); err != nil {
			return nil, d.fail(r, "annotations_directory_item", err)
		}
	}
	classOff, fieldsSize, methodsSize, paramsSize := hdr[0], hdr[1], hdr[2], hdr[3]
	entries := uint64(fieldsSize) + uint64(methodsSize) + uint64(paramsSize)
	if err := d.checkCount(r, "annotations_directory_item", entries*8); err != nil {
		return nil, err
	}

	var class []Annotation
	if classOff != 0 {
		if class, err = d.decodeSet(data, classOff); err != nil {
			return nil, prefix(err, "class")
		}
	}

	fields := make([]FieldAnnotations, 0, fieldsSize)
	for i := uint32(0); i < fieldsSize; i++ {
		idx, setOff, err := d.readPair(r)
		if err != nil {
			return nil, err
		}
		set, err := d.decodeSet(data, setOff)
		if err != nil {
			return nil, prefix(err, "fields", strconv.FormatUint(uint64(i), 10))
		}
		fields = append(fields, NewFieldAnnotations(idx, set))
	}

	methods := make([]MethodAnnotations, 0, methodsSize)
	for i := uint32(0); i < methodsSize; i++ {
		idx, setOff, err := d.readPair(r)
		if err != nil {
			return nil, err
		}
		set, err := d.decodeSet(data, setOff)
		if err != nil {
			return nil, prefix(err, "methods", strconv.FormatUint(uint64(i), 10))
		}
		methods = append(methods, NewMethodAnnotations(idx, set))
	}

	params := make([]ParameterAnnotations, 0, paramsSize)
	for i := uint32(0); i < paramsSize; i++ {
		idx, listOff, err := d.readPair(r)
		if err != nil {
			return nil, err
		}
		set, err := d.decodeRefList(data, listOff)
		if err != nil {
			return nil, prefix(err, "parameters", strconv.FormatUint(uint64(i), 10))
		}
		params = append(params, NewParameterAnnotations(idx, set))
	}

	dir := NewAnnotationsDirectory(class, fields, methods, params)
	if d.opts.ValidateOrdering {
		if err := dir.Validate(); err != nil {
			return nil, err
		}
	}
	d.log.Debug("decoded annotations directory",
		zap.Uint32("offset", off),
		zap.Int("class", len(class)),
		zap.Int("fields", len(fields)),
		zap.Int("methods", len(methods)),
		zap.Int("parameters", len(params)))
	return dir, nil
}

// DecodeAnnotationSet decodes the annotation_set_item at offset off of data.
func (d *Decoder) DecodeAnnotationSet(data []byte, off uint32) ([]Annotation, error) {
	return d.decodeSet(data, off)
}

func (d *Decoder) decodeSet(data []byte, off uint32) ([]Annotation, error) {
	r, err := d.at(data, off, "annotation_set_item")
	if err != nil {
		return nil, err
	}
	size, err := r.ReadU32LE()
	if err != nil {
		return nil, d.fail(r, "annotation_set_item", err)
	}
	if err := d.checkCount(r, "annotation_set_item", uint64(size)*4); err != nil {
		return nil, err
	}
	set := make([]Annotation, 0, size)
	for i := uint32(0); i < size; i++ {
		itemOff, err := r.ReadU32LE()
		if err != nil {
			return nil, d.fail(r, "annotation_set_item", err)
		}
		ir, err := d.at(data, itemOff, "annotation_item")
		if err != nil {
			return nil, err
		}
		a, err := d.readAnnotationItem(ir)
		if err != nil {
			return nil, prefix(err, strconv.FormatUint(uint64(i), 10))
		}
		set = append(set, a)
	}
	if d.opts.ValidateOrdering {
		if err := checkAscending("annotation_set_item", len(set), func(i int) uint32 { return set[i].typeIndex }); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func (d *Decoder) decodeRefList(data []byte, off uint32) ([]Annotation, error) {
	r, err := d.at(data, off, "annotation_set_ref_list")
	if err != nil {
		return nil, err
	}
	size, err := r.ReadU32LE()
	if err != nil {
		return nil, d.fail(r, "annotation_set_ref_list", err)
	}
	if err := d.checkCount(r, "annotation_set_ref_list", uint64(size)*4); err != nil {
		return nil, err
	}
	var flat []Annotation
	for i := uint32(0); i < size; i++ {
		setOff, err := r.ReadU32LE()
		if err != nil {
			return nil, d.fail(r, "annotation_set_ref_list", err)
		}
		if setOff == 0 {
			continue
		}
		set, err := d.decodeSet(data, setOff)
		if err != nil {
			return nil, prefix(err, strconv.FormatUint(uint64(i), 10))
		}
		flat = append(flat, set...)
	}
	return flat, nil
}

func (d *Decoder) readPair(r *binary.Reader) (uint32, uint32, error) {
	idx, err := r.ReadU32LE()
	if err != nil {
		return 0, 0, d.fail(r, "annotations_directory_item", err)
	}
	off, err := r.ReadU32LE()
	if err != nil {
		return 0, 0, d.fail(r, "annotations_directory_item", err)
	}
	return idx, off, nil
}

// at returns a reader positioned at off within data. Offset 0 is never a
// valid item position.
func (d *Decoder) at(data []byte, off uint32, item string) (*binary.Reader, error) {
	if off == 0 {
		return nil, errors.InvalidData(errors.PhaseDecode, []string{item}, "missing offset")
	}
	if uint64(off) >= uint64(len(data)) {
		return nil, errors.OutOfBounds(errors.PhaseDecode, []string{item}, int(off), len(data))
	}
	r := binary.NewBytesReader(data)
	if err := r.Reset(int(off)); err != nil {
		return nil, d.fail(r, item, err)
	}
	return r, nil
}
