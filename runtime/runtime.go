// Package runtime is the reference runtime support library spec.md §6
// places out of core scope: Go closures for the mangled entries a compiled
// B program expects to link against (b.putchar, b.getchar, b.putnumb,
// b.putstr, b.char, b.lchar, b.exit), registered onto a refvm.Builder as
// natives before the user's module is built. There is no teacher analogue
// — informatter-nilan has no externally-linked call surface — so this
// package is built in the low-ceremony, one-function-per-concern style the
// rest of the teacher's packages use rather than adapted from an existing
// file.
package runtime

import (
	"io"
	"strconv"

	"rbc/ir"
	"rbc/refvm"
	"rbc/scope"
)

// eotByte is the string terminator B strings use in place of C's NUL
// (spec.md §3).
const eotByte = 0x04

// ExitError signals that b.exit() was called. It is not a failure: a
// caller running a compiled program (cmd/rbc's "run" subcommand) should
// flush any buffered output and terminate with Code rather than reporting
// this as an error.
type ExitError struct {
	Code int64
}

func (e ExitError) Error() string { return "program called exit" }

// Register declares every runtime-library entry against b and binds each
// into module scope under its unmangled source name, exactly as a
// FunctionDefinition would (spec.md §4.3), plus the __bytes_per_word
// module-scope global that spec.md §8 scenario E5 reads as a plain value
// (see DESIGN.md's Open Questions). wordSize must match the
// BYTES_PER_WORD the rest of the compilation uses. Define failing (a
// runtime name colliding with something already bound) is a
// DeveloperError-class condition — it means the caller populated scope
// out of order — so Register panics rather than threading an error return
// through every one of its call sites.
func Register(b *refvm.Builder, s *scope.Scope, wordSize int) {
	defineGlobal(b, s, "__bytes_per_word", b.DeclareGlobal(ir.Mangle("__bytes_per_word"), int64(wordSize)))

	defineFunction(b, s, "putchar", b.DeclareNative(ir.Mangle("putchar"), 1, putchar))
	defineFunction(b, s, "getchar", b.DeclareNative(ir.Mangle("getchar"), 0, getchar))
	defineFunction(b, s, "putnumb", b.DeclareNative(ir.Mangle("putnumb"), 1, putnumb))
	defineFunction(b, s, "putstr", b.DeclareNative(ir.Mangle("putstr"), 1, putstr))
	defineFunction(b, s, "char", b.DeclareNative(ir.Mangle("char"), 2, charAt))
	defineFunction(b, s, "lchar", b.DeclareNative(ir.Mangle("lchar"), 3, lchar))
	defineFunction(b, s, "exit", b.DeclareNative(ir.Mangle("exit"), 0, exit))
}

func defineGlobal(_ *refvm.Builder, s *scope.Scope, name string, g ir.Global) {
	if err := s.Define(name, scope.ModuleCell{Global: g}); err != nil {
		panic(err)
	}
}

func defineFunction(b *refvm.Builder, s *scope.Scope, name string, fn ir.Func) {
	cell := b.DeclareFunctionGlobal(ir.Mangle(name), fn)
	if err := s.Define(name, scope.ModuleCell{Global: cell}); err != nil {
		panic(err)
	}
}

func putchar(vm *refvm.VM, args []int64) (int64, error) {
	if err := vm.Stdout.WriteByte(byte(args[0])); err != nil {
		return 0, err
	}
	return args[0], nil
}

// getchar returns eotByte at end of input, extending B's own EOT
// convention to the host stream boundary rather than inventing a separate
// end-of-file sentinel.
func getchar(vm *refvm.VM, _ []int64) (int64, error) {
	c, err := vm.Stdin.ReadByte()
	if err == io.EOF {
		return eotByte, nil
	}
	if err != nil {
		return 0, err
	}
	return int64(c), nil
}

func putnumb(vm *refvm.VM, args []int64) (int64, error) {
	digits := strconv.FormatInt(args[0], 10)
	for i := 0; i < len(digits); i++ {
		if err := vm.Stdout.WriteByte(digits[i]); err != nil {
			return 0, err
		}
	}
	return args[0], nil
}

func putstr(vm *refvm.VM, args []int64) (int64, error) {
	bpw := int64(vm.BytesPerWord())
	base := args[0]
	for i := int64(0); ; i++ {
		word, err := vm.ReadWord(base + i/bpw)
		if err != nil {
			return 0, err
		}
		b := byte(word >> (8 * uint(i%bpw)))
		if b == eotByte {
			return args[0], nil
		}
		if err := vm.Stdout.WriteByte(b); err != nil {
			return 0, err
		}
	}
}

// charAt implements b.char(s,n): the n-th byte of the packed string s,
// spec.md §6's sub-word string-indexing entry.
func charAt(vm *refvm.VM, args []int64) (int64, error) {
	wordAddr, offset := packedLocation(vm, args[0], args[1])
	word, err := vm.ReadWord(wordAddr)
	if err != nil {
		return 0, err
	}
	return (word >> (8 * offset)) & 0xFF, nil
}

// lchar implements b.lchar(s,n,c): store byte c as the n-th byte of the
// packed string s, read-modify-writing the containing word.
func lchar(vm *refvm.VM, args []int64) (int64, error) {
	wordAddr, offset := packedLocation(vm, args[0], args[1])
	word, err := vm.ReadWord(wordAddr)
	if err != nil {
		return 0, err
	}
	mask := int64(0xFF) << (8 * offset)
	word = (word &^ mask) | ((args[2] & 0xFF) << (8 * offset))
	return 0, vm.WriteWord(wordAddr, word)
}

func packedLocation(vm *refvm.VM, base, n int64) (wordAddr int64, byteOffset uint) {
	bpw := int64(vm.BytesPerWord())
	return base + n/bpw, uint(n % bpw)
}

func exit(_ *refvm.VM, _ []int64) (int64, error) {
	return 0, ExitError{Code: 0}
}
