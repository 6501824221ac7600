package sui

import (
	"github.com/cockroachdb/errors"

	"github.com/BigdraCo1/sui-object-model-workshop/bcs"
)

// Argument is an opaque handle to a value a command can consume: the gas
// coin, a registered transaction input, or the result of an earlier
// command. Handles are only produced by the builder, which is what makes
// forward references unconstructible.
type Argument struct {
	kind   argumentKind
	index  uint16
	nested uint16
}

type argumentKind uint8

const (
	argumentGasCoin argumentKind = iota
	argumentInput
	argumentResult
	argumentNestedResult
)

// GasCoinArgument refers to the transaction's gas coin.
func GasCoinArgument() Argument {
	return Argument{kind: argumentGasCoin}
}

// NestedResult selects one value out of a command that returned several.
func NestedResult(result Argument, index uint16) (Argument, error) {
	if result.kind != argumentResult {
		return Argument{}, errors.Wrap(ErrBuild, "nested result must derive from a command result")
	}
	return Argument{kind: argumentNestedResult, index: result.index, nested: index}, nil
}

// MarshalBCS writes the argument as its wire enum.
func (arg Argument) MarshalBCS(ser *bcs.Serializer) {
	switch arg.kind {
	case argumentGasCoin:
		ser.Uleb128(0)
	case argumentInput:
		ser.Uleb128(1)
		ser.U16(arg.index)
	case argumentResult:
		ser.Uleb128(2)
		ser.U16(arg.index)
	case argumentNestedResult:
		ser.Uleb128(3)
		ser.U16(arg.index)
		ser.U16(arg.nested)
	default:
		ser.SetError(errors.Newf("unknown argument kind %d", arg.kind))
	}
}

// Command is one step of a programmable transaction. It is a tagged
// variant; each implementation maps to one BCS enum index so new variants
// cannot be silently ignored by the serializer or the builder's argument
// walk.
type Command interface {
	bcs.Marshaler
	// CommandKind returns the BCS enum variant index of the command.
	CommandKind() uint32
	// arguments lists every Argument the command consumes, for
	// reference validation.
	arguments() []Argument
}

// BCS enum variant indexes for Command. Publish, MakeMoveVec and Upgrade
// hold the remaining network-defined slots so the indexes stay
// wire-accurate.
const (
	commandMoveCall uint32 = iota
	commandTransferObjects
	commandSplitCoins
	commandMergeCoins
	commandPublish
	commandMakeMoveVec
	commandUpgrade
)

// MoveCall invokes a function of an on-chain Move package.
type MoveCall struct {
	Package       ObjectID
	Module        string
	Function      string
	TypeArguments []TypeTag
	Arguments     []Argument
}

func (c *MoveCall) CommandKind() uint32   { return commandMoveCall }
func (c *MoveCall) arguments() []Argument { return c.Arguments }

func (c *MoveCall) MarshalBCS(ser *bcs.Serializer) {
	c.Package.MarshalBCS(ser)
	ser.WriteString(c.Module)
	ser.WriteString(c.Function)
	bcs.SerializeSequenceWithFunction(c.TypeArguments, ser, serializeTypeTag)
	bcs.SerializeSequenceWithFunction(c.Arguments, ser, func(ser *bcs.Serializer, arg Argument) {
		arg.MarshalBCS(ser)
	})
}

// TransferObjects sends objects to a recipient address argument.
type TransferObjects struct {
	Objects []Argument
	Address Argument
}

func (c *TransferObjects) CommandKind() uint32 { return commandTransferObjects }

func (c *TransferObjects) arguments() []Argument {
	return append(append([]Argument{}, c.Objects...), c.Address)
}

func (c *TransferObjects) MarshalBCS(ser *bcs.Serializer) {
	bcs.SerializeSequenceWithFunction(c.Objects, ser, func(ser *bcs.Serializer, arg Argument) {
		arg.MarshalBCS(ser)
	})
	c.Address.MarshalBCS(ser)
}

// SplitCoins splits amounts off a source coin, producing one new coin per
// amount.
type SplitCoins struct {
	Coin    Argument
	Amounts []Argument
}

func (c *SplitCoins) CommandKind() uint32 { return commandSplitCoins }

func (c *SplitCoins) arguments() []Argument {
	return append([]Argument{c.Coin}, c.Amounts...)
}

func (c *SplitCoins) MarshalBCS(ser *bcs.Serializer) {
	c.Coin.MarshalBCS(ser)
	bcs.SerializeSequenceWithFunction(c.Amounts, ser, func(ser *bcs.Serializer, arg Argument) {
		arg.MarshalBCS(ser)
	})
}

// MergeCoins folds source coins into a destination coin, consuming the
// sources.
type MergeCoins struct {
	Destination Argument
	Sources     []Argument
}

func (c *MergeCoins) CommandKind() uint32 { return commandMergeCoins }

func (c *MergeCoins) arguments() []Argument {
	return append([]Argument{c.Destination}, c.Sources...)
}

func (c *MergeCoins) MarshalBCS(ser *bcs.Serializer) {
	c.Destination.MarshalBCS(ser)
	bcs.SerializeSequenceWithFunction(c.Sources, ser, func(ser *bcs.Serializer, arg Argument) {
		arg.MarshalBCS(ser)
	})
}

// ObjectRef pins an owned object input to the exact version and digest
// the sender last observed. The network rejects the transaction if the
// object has moved on.
type ObjectRef struct {
	ObjectId ObjectID
	Version  uint64
	Digest   ObjectDigest
}

// MarshalBCS serializes the reference as (id, version, digest).
func (ref ObjectRef) MarshalBCS(ser *bcs.Serializer) {
	ref.ObjectId.MarshalBCS(ser)
	ser.U64(ref.Version)
	ref.Digest.MarshalBCS(ser)
}

// callArg is a registered transaction input: either pure bytes or an
// object reference.
type callArg struct {
	pure   []byte
	object *objectArg
}

func (arg callArg) MarshalBCS(ser *bcs.Serializer) {
	switch {
	case arg.object == nil:
		ser.Uleb128(0)
		ser.WriteBytes(arg.pure)
	default:
		ser.Uleb128(1)
		arg.object.MarshalBCS(ser)
	}
}

// objectArg is the object input variant: owned (pinned by ObjectRef) or
// shared (pinned by initial shared version).
type objectArg struct {
	imm                  *ObjectRef
	sharedId             ObjectID
	initialSharedVersion uint64
	mutable              bool
}

func (arg objectArg) MarshalBCS(ser *bcs.Serializer) {
	if arg.imm != nil {
		ser.Uleb128(0)
		arg.imm.MarshalBCS(ser)
		return
	}
	ser.Uleb128(1)
	arg.sharedId.MarshalBCS(ser)
	ser.U64(arg.initialSharedVersion)
	ser.Bool(arg.mutable)
}

// ProgrammableTransactionBuilder accumulates inputs and commands into a
// programmable transaction. Construction is single-pass and append-only:
// inputs and command results are handed back as opaque [Argument]s, and a
// command may only consume handles that already existed when it was
// added. Finish freezes the builder; no mutation is valid afterwards.
type ProgrammableTransactionBuilder struct {
	inputs    []callArg
	commands  []Command
	finalized bool
}

// NewProgrammableTransactionBuilder creates an empty builder.
func NewProgrammableTransactionBuilder() *ProgrammableTransactionBuilder {
	return &ProgrammableTransactionBuilder{}
}

// Pure registers a BCS-serializable value as a transaction input and
// returns its handle. Supported values: unsigned integers, bool, string,
// addresses, and pre-serialized byte slices.
func (ptb *ProgrammableTransactionBuilder) Pure(value any) (Argument, error) {
	if ptb.finalized {
		return Argument{}, errors.Wrap(ErrBuild, "builder is finalized")
	}
	raw, err := serializePureValue(value)
	if err != nil {
		return Argument{}, err
	}
	return ptb.appendInput(callArg{pure: raw}), nil
}

// Object registers an owned (or immutable) object input by reference and
// returns its handle.
func (ptb *ProgrammableTransactionBuilder) Object(ref ObjectRef) (Argument, error) {
	if ptb.finalized {
		return Argument{}, errors.Wrap(ErrBuild, "builder is finalized")
	}
	refCopy := ref
	return ptb.appendInput(callArg{object: &objectArg{imm: &refCopy}}), nil
}

// SharedObject registers a shared object input. The initial shared
// version must come from a fresh object lookup; the builder refuses a
// zero version rather than submit a reference the network is certain to
// reject.
func (ptb *ProgrammableTransactionBuilder) SharedObject(id ObjectID, initialSharedVersion uint64, mutable bool) (Argument, error) {
	if ptb.finalized {
		return Argument{}, errors.Wrap(ErrBuild, "builder is finalized")
	}
	if initialSharedVersion == 0 {
		return Argument{}, errors.Wrapf(ErrBuild, "shared object %s requires its initial shared version; query the object first", id)
	}
	return ptb.appendInput(callArg{object: &objectArg{
		sharedId:             id,
		initialSharedVersion: initialSharedVersion,
		mutable:              mutable,
	}}), nil
}

// Command appends a command and returns the handle to its result. Every
// argument the command consumes must refer to an already registered
// input or a strictly earlier command.
func (ptb *ProgrammableTransactionBuilder) Command(command Command) (Argument, error) {
	if ptb.finalized {
		return Argument{}, errors.Wrap(ErrBuild, "builder is finalized")
	}
	if command == nil {
		return Argument{}, errors.Wrap(ErrBuild, "nil command")
	}
	position := uint16(len(ptb.commands))
	for _, arg := range command.arguments() {
		if err := ptb.checkArgument(arg, position); err != nil {
			return Argument{}, err
		}
	}
	ptb.commands = append(ptb.commands, command)
	return Argument{kind: argumentResult, index: position}, nil
}

func (ptb *ProgrammableTransactionBuilder) checkArgument(arg Argument, position uint16) error {
	switch arg.kind {
	case argumentGasCoin:
		return nil
	case argumentInput:
		if int(arg.index) >= len(ptb.inputs) {
			return errors.Wrapf(ErrBuild, "input %d is not registered", arg.index)
		}
		return nil
	case argumentResult, argumentNestedResult:
		if arg.index >= position {
			return errors.Wrapf(ErrBuild, "command %d cannot reference result of command %d", position, arg.index)
		}
		return nil
	default:
		return errors.Wrapf(ErrBuild, "unknown argument kind %d", arg.kind)
	}
}

func (ptb *ProgrammableTransactionBuilder) appendInput(input callArg) Argument {
	ptb.inputs = append(ptb.inputs, input)
	return Argument{kind: argumentInput, index: uint16(len(ptb.inputs) - 1)}
}

// Finish freezes the accumulated inputs and commands into an immutable
// [ProgrammableTransaction]. The builder is terminal afterwards: Finish
// and every mutating method fail on further use.
func (ptb *ProgrammableTransactionBuilder) Finish() (*ProgrammableTransaction, error) {
	if ptb.finalized {
		return nil, errors.Wrap(ErrBuild, "builder is already finalized")
	}
	ptb.finalized = true
	return &ProgrammableTransaction{
		inputs:   append([]callArg{}, ptb.inputs...),
		commands: append([]Command{}, ptb.commands...),
	}, nil
}

// ProgrammableTransaction is the frozen command sequence produced by
// [ProgrammableTransactionBuilder.Finish].
type ProgrammableTransaction struct {
	inputs   []callArg
	commands []Command
}

// Commands returns the command list in insertion order.
func (pt *ProgrammableTransaction) Commands() []Command {
	return append([]Command{}, pt.commands...)
}

// InputCount returns how many inputs were registered.
func (pt *ProgrammableTransaction) InputCount() int {
	return len(pt.inputs)
}

// MarshalBCS serializes inputs then commands, each command prefixed by
// its enum variant index.
func (pt *ProgrammableTransaction) MarshalBCS(ser *bcs.Serializer) {
	bcs.SerializeSequenceWithFunction(pt.inputs, ser, func(ser *bcs.Serializer, input callArg) {
		input.MarshalBCS(ser)
	})
	bcs.SerializeSequenceWithFunction(pt.commands, ser, func(ser *bcs.Serializer, command Command) {
		ser.Uleb128(command.CommandKind())
		command.MarshalBCS(ser)
	})
}

func serializePureValue(value any) ([]byte, error) {
	switch v := value.(type) {
	case bool:
		return bcs.SerializeBool(v)
	case uint8:
		return bcs.SerializeU8(v)
	case uint16:
		return bcs.SerializeU16(v)
	case uint32:
		return bcs.SerializeU32(v)
	case uint64:
		return bcs.SerializeU64(v)
	case string:
		return bcs.SerializeSingle(func(ser *bcs.Serializer) { ser.WriteString(v) })
	case AccountAddress:
		return bcs.Serialize(v)
	case []byte:
		// Pre-serialized BCS bytes pass through untouched.
		return append([]byte{}, v...), nil
	case bcs.Marshaler:
		return bcs.Serialize(v)
	default:
		return nil, errors.Wrapf(ErrBuild, "cannot serialize pure value of type %T", value)
	}
}
