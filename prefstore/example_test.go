package prefstore_test

import (
	"fmt"

	"github.com/mapoio/prefstore/prefstore"
)

func Example() {
	defaults := `{
		// shipped defaults, comments welcome
		"viewer": {
			"font_size": 13,
			"wrap_lines": false,
		},
	}`

	store, err := prefstore.New(prefstore.Options{
		Defaults: defaults,
		Storage:  prefstore.NewMemoryStorage(""),
	})
	if err != nil {
		panic(err)
	}

	token := store.Observe("viewer.font_size", func() {
		fmt.Println("font size changed to", store.GetInt("viewer.font_size"))
	})
	defer token.Close()

	store.SetInt("viewer.font_size", 15)
	fmt.Println("wrap lines:", store.GetBool("viewer.wrap_lines"))
	fmt.Println("default font size:", store.GetDefault("viewer.font_size").Kind())

	// Output:
	// font size changed to 15
	// wrap lines: false
	// default font size: int64
}
