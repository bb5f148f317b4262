package alphamap_test

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/triekit/alphamap"
)

func Example() {
	m := alphamap.New()
	if err := m.AddRange('a', 'z'); err != nil {
		log.Fatal(err)
	}
	if err := m.AddRange('0', '9'); err != nil {
		log.Fatal(err)
	}

	ix, _ := m.ToIndex('q')
	fmt.Println(ix)

	c, _ := m.ToChar(27)
	fmt.Printf("%c\n", c)
	// Output:
	// 17
	// 0
}

func ExampleReadText() {
	const def = `# ASCII letters and digits
[41,5A]
[61,7A]
not a range
[30,39]
`
	m, err := alphamap.ReadText(strings.NewReader(def), alphamap.WithLogger(alphamap.NoopLogger()))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(m.RangeCount(), m.AlphabetSize())
	// Output:
	// 3 62
}

func ExampleReadBinary() {
	m := alphamap.New()
	if err := m.AddRange(0x4E00, 0x9FFF); err != nil {
		log.Fatal(err)
	}

	var buf bytes.Buffer
	if err := m.WriteBinary(&buf); err != nil {
		log.Fatal(err)
	}

	got, ok, err := alphamap.ReadBinary(bytes.NewReader(buf.Bytes()))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(ok, got.RangeCount())
	// Output:
	// true 1
}

func ExampleMap_ToIndexString() {
	m := alphamap.New()
	if err := m.AddRange('a', 'z'); err != nil {
		log.Fatal(err)
	}

	cs := alphamap.Chars("trie")
	is := m.ToIndexString(cs)
	fmt.Println(is)

	fmt.Println(alphamap.String(m.ToCharString(is)))
	// Output:
	// [20 18 9 5 0]
	// trie
}
