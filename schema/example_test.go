package schema_test

import (
	"errors"
	"fmt"
	"io"

	"github.com/ardnew/schemaflag/schema"
)

func ExampleBuild() {
	s := schema.MustNew("some_class",
		schema.Optional("a", schema.Int, 123524),
		schema.Optional("name", schema.String, "bob"),
	)

	instances, err := schema.Build(s, 3, []string{"--a", "1", "2", "3", "--name", "alice"})
	if err != nil {
		fmt.Println(err)

		return
	}

	for _, inst := range instances {
		fmt.Println(inst)
	}

	// Output:
	// some_class{a=1 name=alice}
	// some_class{a=2 name=alice}
	// some_class{a=3 name=alice}
}

func ExampleParser_Register() {
	p := schema.NewParser(schema.WithWriters(io.Discard, io.Discard))

	opt := schema.MustNew("optimizer", schema.Optional("lr", schema.Float, 0.01))

	if _, err := p.Register(opt, "train", schema.WithCount(2)); err != nil {
		fmt.Println(err)

		return
	}

	_, err := p.Register(opt, "train")
	fmt.Println(errors.Is(err, schema.ErrDuplicateDestination))

	res, err := p.ParseString("--lr 0.1 0.2")
	if err != nil {
		fmt.Println(err)

		return
	}

	instances, _ := res.Lookup("train")
	fmt.Println(instances[0].Value("lr"), instances[1].Value("lr"))

	// Output:
	// true
	// 0.1 0.2
}

func ExampleMismatchError() {
	s := schema.MustNew("some_class", schema.Optional("a", schema.Int, 123524))

	_, err := schema.BuildString(s, 5, "--a 1 --a 2 --a 3")

	var mismatch *schema.MismatchError
	if errors.As(err, &mismatch) {
		fmt.Println(mismatch.Want, mismatch.Got)
	}

	fmt.Println(err)

	// Output:
	// 5 3
	// instance count mismatch (dest=some_class.a, flag=--a): got 3 values, want 1 or 5
}
