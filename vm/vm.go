// Package vm provides a VirtualMachine that executes decoded programs against
// a growable tape of byte cells.
package vm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/braintranscriber/bt/bytecode"
	"github.com/braintranscriber/bt/errz"
	"github.com/braintranscriber/bt/op"
	"github.com/rs/zerolog"
)

// DefaultContextCheckInterval is the number of instructions between
// deterministic checks of ctx.Done(). Set to 0 to disable.
const DefaultContextCheckInterval = 1000

type flusher interface {
	Flush() error
}

type VirtualMachine struct {
	ip         int   // instruction pointer
	pointer    int   // data pointer, always within [0, tape.Len())
	stack      []int // positions of the loop starts currently entered
	steps      int64
	program    *bytecode.Program
	tape       *Tape
	reader     io.ByteReader
	running    bool
	startCount int64
	runMutex   sync.Mutex
	out        [1]byte

	input                io.Reader
	output               io.Writer
	tapeSize             int
	memory               []byte
	contextCheckInterval int
	observer             Observer
	logger               zerolog.Logger
}

// New creates a new Virtual Machine for the given program.
func New(program *bytecode.Program, options ...Option) *VirtualMachine {
	vm := &VirtualMachine{
		program:              program,
		output:               io.Discard,
		contextCheckInterval: DefaultContextCheckInterval,
		logger:               zerolog.Nop(),
	}
	for _, opt := range options {
		opt(vm)
	}
	if vm.input == nil {
		vm.input = strings.NewReader("")
	}
	if br, ok := vm.input.(io.ByteReader); ok {
		vm.reader = br
	} else {
		vm.reader = bufio.NewReader(vm.input)
	}
	vm.reset()
	return vm
}

// reset prepares a fresh tape, data pointer and jump stack.
func (vm *VirtualMachine) reset() {
	size := vm.tapeSize
	if size < 1 {
		size = DefaultTapeSize
	}
	if len(vm.memory) > size {
		size = len(vm.memory)
	}
	vm.tape = NewTape(size)
	copy(vm.tape.cells, vm.memory)
	vm.ip = 0
	vm.pointer = 0
	vm.stack = vm.stack[:0]
	vm.steps = 0
}

func (vm *VirtualMachine) start() error {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	if vm.running {
		return fmt.Errorf("vm is already running")
	}
	vm.running = true
	vm.startCount++
	return nil
}

func (vm *VirtualMachine) stop() {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	vm.running = false
}

// Run executes the program from its first instruction until the instruction
// pointer passes the end of the program. Each call starts from a fresh tape.
//
// Set up some guarantees:
//  1. It is an error to call Run on a VM that is already running
//  2. The running flag will always be set to false when Run returns
//  3. Any panics are translated to errors and the VM is stopped
//  4. A flushable output stream is flushed before Run returns
func (vm *VirtualMachine) Run(ctx context.Context) (err error) {
	if err := vm.start(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if flushErr := vm.flush(); flushErr != nil && err == nil {
			err = errz.Wrap(errz.ErrIO, -1, op.Invalid, flushErr)
		}
		vm.stop()
	}()
	if vm.startCount > 1 {
		vm.reset()
	}
	return vm.eval(ctx)
}

func (vm *VirtualMachine) eval(ctx context.Context) error {
	// Instruction counter for deterministic context checking
	var instructionCount int
	checkInterval := vm.contextCheckInterval
	doneChan := ctx.Done()
	count := vm.program.InstructionCount()

	for vm.ip < count {

		if checkInterval > 0 && doneChan != nil {
			instructionCount++
			if instructionCount >= checkInterval {
				instructionCount = 0
				select {
				case <-doneChan:
					return ctx.Err()
				default:
				}
			}
		}

		ip := vm.ip
		opcode := vm.program.InstructionAt(ip)

		if vm.observer != nil {
			event := StepEvent{
				IP:         ip,
				Opcode:     opcode,
				OpcodeName: op.GetInfo(opcode).Name,
				Pointer:    vm.pointer,
				Cell:       vm.tape.cells[vm.pointer],
				StackDepth: len(vm.stack),
				Step:       vm.steps + 1,
			}
			if !vm.observer.OnStep(event) {
				return errz.New(errz.ErrHalted, ip, opcode,
					"execution halted by observer after %d steps", vm.steps)
			}
		}
		vm.steps++

		// Advance the instruction pointer before executing the current
		// instruction. Loop instructions overwrite it to jump.
		vm.ip++

		switch opcode {
		case op.MoveRight:
			vm.pointer++
			if vm.pointer >= vm.tape.Len() {
				vm.tape.grow()
				vm.logger.Debug().Int("size", vm.tape.Len()).Int("ip", ip).Msg("tape grown")
			}
		case op.MoveLeft:
			if vm.pointer > 0 {
				vm.pointer--
			}
		case op.Increment:
			vm.tape.cells[vm.pointer]++
		case op.Decrement:
			vm.tape.cells[vm.pointer]--
		case op.Output:
			vm.out[0] = vm.tape.cells[vm.pointer]
			if _, err := vm.output.Write(vm.out[:]); err != nil {
				return errz.Wrap(errz.ErrIO, ip, opcode, err)
			}
		case op.Input:
			if err := vm.flush(); err != nil {
				return errz.Wrap(errz.ErrIO, ip, opcode, err)
			}
			b, err := vm.reader.ReadByte()
			if errors.Is(err, io.EOF) {
				// End of input leaves the cell unchanged.
				break
			}
			if err != nil {
				return errz.Wrap(errz.ErrIO, ip, opcode, err)
			}
			vm.tape.cells[vm.pointer] = b
		case op.LoopStart:
			if vm.tape.cells[vm.pointer] != 0 {
				vm.stack = append(vm.stack, ip)
				break
			}
			end, err := bytecode.FindLoopEnd(vm.program, ip)
			if err != nil {
				vm.logger.Warn().Err(err).Int("ip", ip).Msg("unbalanced loop")
				return err
			}
			vm.ip = end + 1
		case op.LoopEnd:
			top := len(vm.stack) - 1
			if top < 0 {
				err := errz.UnbalancedLoop(ip, opcode)
				vm.logger.Warn().Err(err).Int("ip", ip).Msg("unbalanced loop")
				return err
			}
			if vm.tape.cells[vm.pointer] != 0 {
				vm.ip = vm.stack[top] + 1
			} else {
				vm.stack = vm.stack[:top]
			}
		default:
			return fmt.Errorf("invalid instruction %d at %d", opcode, ip)
		}
	}
	return nil
}

func (vm *VirtualMachine) flush() error {
	if f, ok := vm.output.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// GetIP returns the current instruction pointer.
func (vm *VirtualMachine) GetIP() int {
	return vm.ip
}

// Pointer returns the data pointer.
func (vm *VirtualMachine) Pointer() int {
	return vm.pointer
}

// Cell returns the value of the cell under the data pointer.
func (vm *VirtualMachine) Cell() byte {
	return vm.tape.cells[vm.pointer]
}

// Tape returns the machine's tape. It must not be modified while the VM
// is running.
func (vm *VirtualMachine) Tape() *Tape {
	return vm.tape
}

// StackDepth returns the number of entries on the jump stack.
func (vm *VirtualMachine) StackDepth() int {
	return len(vm.stack)
}

// Steps returns the number of instructions executed by the last run.
func (vm *VirtualMachine) Steps() int64 {
	return vm.steps
}
