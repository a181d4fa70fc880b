/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import (
	"hash/crc32"
	"io"
	"math"

	"github.com/spindlebink/hollicode/pkg/bytecode"
	"github.com/spindlebink/hollicode/pkg/errs"
	"github.com/spindlebink/hollicode/pkg/romutil"
	"github.com/spindlebink/hollicode/pkg/value"
)

// savedStateVersion is the current version of a Hollicode VM saved state.
const savedStateVersion uint32 = 0

// savedStateMagic identifies a Hollicode VM saved state: the "HlcdSav"
// string followed by a SUB character, in the tradition of marking a "soft
// end-of-file".
var savedStateMagic = []byte{0x48, 0x6C, 0x63, 0x64, 0x53, 0x61, 0x76, 0x1A}

// value kind tags used in the serialized form. Deliberately distinct from
// value.Kind's own numbering, so the saved-state format doesn't break if the
// in-memory Kind enum is ever reordered.
const (
	valueTagNil byte = iota
	valueTagBool
	valueTagNumber
	valueTagString
)

// Serialize writes the VM's execution state -- instruction pointer, operand
// stack, traceback, pending options and variables -- to w. It does not save
// the loaded Program; a host restoring a saved state is expected to Load the
// same program (checked via ProgramHash) before calling Deserialize.
//
// Functions and Objects aren't serializable (a Go closure and, in general,
// host-supplied reference data have no portable encoding), so a Value of
// either kind anywhere in the stack or variables makes Serialize fail.
// The on-disk format is a magic number, a version, then a CRC32-checked
// payload.
func (vm *VM) Serialize(w io.Writer) errs.Error {
	if err := vm.serializeHeader(w); err != nil {
		return err
	}
	crc, err := vm.serializePayload(w)
	if err != nil {
		return err
	}
	return vm.serializeFooter(w, crc)
}

func (vm *VM) serializeHeader(w io.Writer) errs.Error {
	if _, plainErr := w.Write(savedStateMagic); plainErr != nil {
		return errs.NewToolError("serializing VM state magic: %v", plainErr)
	}
	if plainErr := romutil.SerializeU32(w, savedStateVersion); plainErr != nil {
		return errs.NewToolError("serializing VM state version: %v", plainErr)
	}
	return nil
}

func (vm *VM) serializePayload(w io.Writer) (uint32, errs.Error) {
	crc := crc32.NewIEEE()
	mw := io.MultiWriter(w, crc)

	if vm.program == nil {
		return 0, errs.NewToolError("serializing VM state: no program loaded")
	}
	hash := vm.program.Hash()
	if _, plainErr := mw.Write(hash[:]); plainErr != nil {
		return 0, errs.NewToolError("serializing VM state program hash: %v", plainErr)
	}

	if plainErr := romutil.SerializeU32(mw, uint32(vm.ip)); plainErr != nil {
		return 0, errs.NewToolError("serializing VM state ip: %v", plainErr)
	}

	yieldByte := uint32(0)
	if vm.yield {
		yieldByte = 1
	}
	if plainErr := romutil.SerializeU32(mw, yieldByte); plainErr != nil {
		return 0, errs.NewToolError("serializing VM state yield flag: %v", plainErr)
	}

	if err := serializeValueSlice(mw, vm.stack.data); err != nil {
		return 0, err
	}

	if err := romutil.SerializeU32(mw, uint32(len(vm.traceback.ips))); err != nil {
		return 0, errs.NewToolError("serializing VM state traceback: %v", err)
	}
	for _, ip := range vm.traceback.ips {
		if err := romutil.SerializeU32(mw, uint32(ip)); err != nil {
			return 0, errs.NewToolError("serializing VM state traceback entry: %v", err)
		}
	}

	if err := romutil.SerializeU32(mw, uint32(len(vm.options.entries))); err != nil {
		return 0, errs.NewToolError("serializing VM state options: %v", err)
	}
	for _, opt := range vm.options.entries {
		if err := romutil.SerializeU32(mw, uint32(opt.ipAtOpt)); err != nil {
			return 0, errs.NewToolError("serializing VM state option ip: %v", err)
		}
		if err := serializeValueSlice(mw, opt.args); err != nil {
			return 0, err
		}
	}

	if err := romutil.SerializeU32(mw, uint32(len(vm.Variables))); err != nil {
		return 0, errs.NewToolError("serializing VM state variable count: %v", err)
	}
	for name, v := range vm.Variables {
		if err := romutil.SerializeString(mw, name); err != nil {
			return 0, errs.NewToolError("serializing VM state variable name: %v", err)
		}
		if err := serializeValue(mw, v); err != nil {
			return 0, err
		}
	}

	return crc.Sum32(), nil
}

func (vm *VM) serializeFooter(w io.Writer, crc uint32) errs.Error {
	if err := romutil.SerializeU32(w, crc); err != nil {
		return errs.NewToolError("serializing VM state footer: %v", err)
	}
	return nil
}

// Deserialize restores execution state previously written by Serialize.
// vm must already have the matching Program Load()ed; Deserialize refuses
// to restore state captured against a different program.
func (vm *VM) Deserialize(r io.Reader) errs.Error {
	if err := vm.deserializeHeader(r); err != nil {
		return err
	}
	crc, err := vm.deserializePayload(r)
	if err != nil {
		return err
	}
	return vm.deserializeFooter(r, crc)
}

func (vm *VM) deserializeHeader(r io.Reader) errs.Error {
	readMagic := make([]byte, len(savedStateMagic))
	if _, plainErr := io.ReadFull(r, readMagic); plainErr != nil {
		return errs.NewToolError("deserializing VM state magic: %v", plainErr)
	}
	for i, b := range readMagic {
		if b != savedStateMagic[i] {
			return errs.NewToolError("invalid VM state magic number")
		}
	}

	version, err := romutil.DeserializeU32(r)
	if err != nil {
		return errs.NewToolError("deserializing VM state version: %v", err)
	}
	if version != savedStateVersion {
		return errs.NewToolError("unsupported VM state version: %v", version)
	}
	return nil
}

func (vm *VM) deserializePayload(r io.Reader) (uint32, errs.Error) {
	crc := crc32.NewIEEE()
	tr := io.TeeReader(r, crc)

	if vm.program == nil {
		return 0, errs.NewToolError("deserializing VM state: no program loaded to check against")
	}

	var readHash bytecode.ProgramHash
	if _, plainErr := io.ReadFull(tr, readHash[:]); plainErr != nil {
		return 0, errs.NewToolError("deserializing VM state program hash: %v", plainErr)
	}
	wantHash := vm.program.Hash()
	if readHash != wantHash {
		return 0, errs.NewToolError("VM state was saved against a different program")
	}

	ip, err := romutil.DeserializeU32(tr)
	if err != nil {
		return 0, errs.NewToolError("deserializing VM state ip: %v", err)
	}
	vm.ip = int(ip)

	yieldByte, err := romutil.DeserializeU32(tr)
	if err != nil {
		return 0, errs.NewToolError("deserializing VM state yield flag: %v", err)
	}
	vm.yield = yieldByte != 0

	stackValues, deserErr := deserializeValueSlice(tr)
	if deserErr != nil {
		return 0, deserErr
	}
	vm.stack = stack{data: stackValues}

	tbLen, err := romutil.DeserializeU32(tr)
	if err != nil {
		return 0, errs.NewToolError("deserializing VM state traceback: %v", err)
	}
	ips := make([]int, tbLen)
	for i := range ips {
		v, err := romutil.DeserializeU32(tr)
		if err != nil {
			return 0, errs.NewToolError("deserializing VM state traceback entry: %v", err)
		}
		ips[i] = int(v)
	}
	vm.traceback = traceback{ips: ips}

	optLen, err := romutil.DeserializeU32(tr)
	if err != nil {
		return 0, errs.NewToolError("deserializing VM state options: %v", err)
	}
	entries := make([]pendingOption, optLen)
	for i := range entries {
		ipAtOpt, err := romutil.DeserializeU32(tr)
		if err != nil {
			return 0, errs.NewToolError("deserializing VM state option ip: %v", err)
		}
		args, deserErr := deserializeValueSlice(tr)
		if deserErr != nil {
			return 0, deserErr
		}
		entries[i] = pendingOption{ipAtOpt: int(ipAtOpt), args: args}
	}
	vm.options = optionRegistry{entries: entries}

	varCount, err := romutil.DeserializeU32(tr)
	if err != nil {
		return 0, errs.NewToolError("deserializing VM state variable count: %v", err)
	}
	vm.Variables = make(map[string]value.Value, varCount)
	for i := uint32(0); i < varCount; i++ {
		name, err := romutil.DeserializeString(tr)
		if err != nil {
			return 0, errs.NewToolError("deserializing VM state variable name: %v", err)
		}
		v, deserErr := deserializeValue(tr)
		if deserErr != nil {
			return 0, deserErr
		}
		vm.Variables[name] = v
	}

	return crc.Sum32(), nil
}

func (vm *VM) deserializeFooter(r io.Reader, crc uint32) errs.Error {
	readCRC, err := romutil.DeserializeU32(r)
	if err != nil {
		return errs.NewToolError("deserializing VM state footer: %v", err)
	}
	if readCRC != crc {
		return errs.NewToolError("VM state CRC32 mismatch")
	}
	return nil
}

func serializeValueSlice(w io.Writer, values []value.Value) errs.Error {
	if err := romutil.SerializeU32(w, uint32(len(values))); err != nil {
		return errs.NewToolError("serializing value slice length: %v", err)
	}
	for _, v := range values {
		if err := serializeValue(w, v); err != nil {
			return err
		}
	}
	return nil
}

func deserializeValueSlice(r io.Reader) ([]value.Value, errs.Error) {
	n, err := romutil.DeserializeU32(r)
	if err != nil {
		return nil, errs.NewToolError("deserializing value slice length: %v", err)
	}
	values := make([]value.Value, n)
	for i := range values {
		v, deserErr := deserializeValue(r)
		if deserErr != nil {
			return nil, deserErr
		}
		values[i] = v
	}
	return values, nil
}

func serializeValue(w io.Writer, v value.Value) errs.Error {
	switch v.Kind() {
	case value.KindNil:
		_, plainErr := w.Write([]byte{valueTagNil})
		if plainErr != nil {
			return errs.NewToolError("serializing Nil value: %v", plainErr)
		}
	case value.KindBool:
		tag := []byte{valueTagBool, 0}
		if v.AsBool() {
			tag[1] = 1
		}
		if _, plainErr := w.Write(tag); plainErr != nil {
			return errs.NewToolError("serializing Bool value: %v", plainErr)
		}
	case value.KindNumber:
		if _, plainErr := w.Write([]byte{valueTagNumber}); plainErr != nil {
			return errs.NewToolError("serializing Number value: %v", plainErr)
		}
		bits := math.Float64bits(v.AsNumber())
		if err := romutil.SerializeU32(w, uint32(bits>>32)); err != nil {
			return errs.NewToolError("serializing Number value: %v", err)
		}
		if err := romutil.SerializeU32(w, uint32(bits)); err != nil {
			return errs.NewToolError("serializing Number value: %v", err)
		}
	case value.KindString:
		if _, plainErr := w.Write([]byte{valueTagString}); plainErr != nil {
			return errs.NewToolError("serializing String value: %v", plainErr)
		}
		if err := romutil.SerializeString(w, v.AsString()); err != nil {
			return errs.NewToolError("serializing String value: %v", err)
		}
	default:
		return errs.NewToolError("value of kind %v is not serializable", v.Kind())
	}
	return nil
}

func deserializeValue(r io.Reader) (value.Value, errs.Error) {
	tag := make([]byte, 1)
	if _, plainErr := io.ReadFull(r, tag); plainErr != nil {
		return value.Value{}, errs.NewToolError("deserializing value tag: %v", plainErr)
	}
	switch tag[0] {
	case valueTagNil:
		return value.Nil(), nil
	case valueTagBool:
		b := make([]byte, 1)
		if _, plainErr := io.ReadFull(r, b); plainErr != nil {
			return value.Value{}, errs.NewToolError("deserializing Bool value: %v", plainErr)
		}
		return value.Bool(b[0] != 0), nil
	case valueTagNumber:
		hi, err := romutil.DeserializeU32(r)
		if err != nil {
			return value.Value{}, errs.NewToolError("deserializing Number value: %v", err)
		}
		lo, err := romutil.DeserializeU32(r)
		if err != nil {
			return value.Value{}, errs.NewToolError("deserializing Number value: %v", err)
		}
		bits := uint64(hi)<<32 | uint64(lo)
		return value.Number(math.Float64frombits(bits)), nil
	case valueTagString:
		s, err := romutil.DeserializeString(r)
		if err != nil {
			return value.Value{}, errs.NewToolError("deserializing String value: %v", err)
		}
		return value.String(s), nil
	default:
		return value.Value{}, errs.NewToolError("unrecognized serialized value tag %d", tag[0])
	}
}
