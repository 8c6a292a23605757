// Package generate implements the streamgen code generator.
//
// Hand-written producers usually boil down to a single unexported method
// doing the actual work:
//
//	func (c *Cursor) next() (Row, error)
//
// where a nil error carries the next item, io.EOF signals exhaustion, and
// any other error is a failure. streamgen turns that one method into the
// public stream surface: given a type name, it generates an exported Stream
// method returning a stream.Source over the produced items.
package generate

import (
	"errors"
	"fmt"
	"go/format"
	"go/types"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"
)

// streamPackage is the import path of the stream library referenced by the
// generated code.
const streamPackage = "github.com/streamkit/stream"

// Options configure a run of the generator.
type Options struct {
	// Types are the names of producer types to generate stream accessors
	// for. Each must name a defined type, in the loaded package, carrying a
	// next() (T, error) method.
	Types []string

	// Patterns select the package to load, in the go/packages sense. They
	// must resolve to exactly one package. Defaults to ".".
	Patterns []string

	// Output overrides the output file name, which defaults to
	// <type>_stream.go next to the package's sources. Only valid when a
	// single type is given.
	Output string
}

// Generate loads the package selected by opts.Patterns and writes one
// generated file per requested type.
func Generate(opts Options) error {
	typeNames := uniqueNames(opts.Types)
	if len(typeNames) == 0 {
		return errors.New("generate: no types requested")
	}
	if opts.Output != "" && len(typeNames) > 1 {
		return errors.New("generate: -output cannot be used with multiple types")
	}

	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedSyntax | packages.NeedImports,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return err
	}
	if packages.PrintErrors(pkgs) > 0 {
		return errors.New("generate: loaded packages contain errors")
	}
	if len(pkgs) != 1 {
		return fmt.Errorf("generate: patterns resolve to %d packages, expect exactly 1", len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.GoFiles) == 0 {
		return fmt.Errorf("generate: package %s has no Go files", pkg.PkgPath)
	}
	dir := filepath.Dir(pkg.GoFiles[0])

	var group errgroup.Group
	for _, typeName := range typeNames {
		group.Go(func() error {
			elem, err := lookupProducer(pkg, typeName)
			if err != nil {
				return err
			}
			src, err := render(pkg.Types, typeName, elem)
			if err != nil {
				return err
			}
			output := opts.Output
			if output == "" {
				output = filepath.Join(dir, strings.ToLower(typeName)+"_stream.go")
			}
			if err := os.WriteFile(output, src, 0644); err != nil {
				return err
			}
			log.Printf("streamgen: wrote %s", output)
			return nil
		})
	}
	return group.Wait()
}

// uniqueNames drops repeated names, keeping first occurrences in order, so
// that a repeated -type argument does not generate the same file twice
// concurrently.
func uniqueNames(names []string) []string {
	unique := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	return unique
}

// lookupProducer resolves typeName in pkg and returns the item type of its
// next method.
func lookupProducer(pkg *packages.Package, typeName string) (types.Type, error) {
	obj := pkg.Types.Scope().Lookup(typeName)
	if obj == nil {
		return nil, fmt.Errorf("generate: type %s not found in package %s", typeName, pkg.PkgPath)
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("generate: %s is not a type", typeName)
	}
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return nil, fmt.Errorf("generate: %s is not a defined type", typeName)
	}
	return producerElem(named)
}

// producerElem returns T for a defined type carrying a next() (T, error)
// method.
func producerElem(named *types.Named) (types.Type, error) {
	for i := 0; i < named.NumMethods(); i++ {
		m := named.Method(i)
		if m.Name() != "next" {
			continue
		}
		sig := m.Type().(*types.Signature)
		if sig.Params().Len() != 0 || sig.Results().Len() != 2 {
			break
		}
		if !types.Identical(sig.Results().At(1).Type(), types.Universe.Lookup("error").Type()) {
			break
		}
		return sig.Results().At(0).Type(), nil
	}
	return nil, fmt.Errorf("generate: type %s does not have a next() (T, error) method", named.Obj().Name())
}

// render produces the formatted source of the generated file.
func render(pkg *types.Package, typeName string, elem types.Type) ([]byte, error) {
	var imports importMap
	streamName := imports.add(streamPackage)
	elemString := types.TypeString(elem, func(p *types.Package) string {
		if p == pkg {
			return ""
		}
		return imports.add(p.Path())
	})

	s := new(strings.Builder)
	fmt.Fprintf(s, "// Code generated by streamgen; DO NOT EDIT.\n\n")
	fmt.Fprintf(s, "package %s\n\n", pkg.Name())
	fmt.Fprintf(s, "import (\n")
	for _, imp := range imports.sorted() {
		name, p := imp[0], imp[1]
		if name == path.Base(p) {
			fmt.Fprintf(s, "\t%q\n", p)
		} else {
			fmt.Fprintf(s, "\t%s %q\n", name, p)
		}
	}
	fmt.Fprintf(s, ")\n\n")
	fmt.Fprintf(s, "// Stream returns a source over the items of x. The source reports\n")
	fmt.Fprintf(s, "// exhaustion when x.next returns io.EOF, and a failure on any other\n")
	fmt.Fprintf(s, "// error. It must only be polled by one caller at a time.\n")
	fmt.Fprintf(s, "func (x *%s) Stream() %s.Source[%s] {\n", typeName, streamName, elemString)
	fmt.Fprintf(s, "\treturn %s.FromNext(x.next)\n", streamName)
	fmt.Fprintf(s, "}\n")

	return format.Source([]byte(s.String()))
}
