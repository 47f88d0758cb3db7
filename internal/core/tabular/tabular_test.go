package tabular

import (
	"reflect"
	"testing"
)

func TestParse_HeaderAndRows(t *testing.T) {
	t.Parallel()

	in := "\n  stream_link , zatsu_start,Horror \n\nhttps://youtu.be/abc12345678,1:00:00,1\n\n"
	tb := Parse(in)

	if want := []string{"stream_link", "zatsu_start", "Horror"}; !reflect.DeepEqual(tb.Header, want) {
		t.Fatalf("header = %#v want %#v", tb.Header, want)
	}
	if tb.Len() != 1 {
		t.Fatalf("rows = %d want 1", tb.Len())
	}
	r := tb.Rows[0]
	if r["stream_link"] != "https://youtu.be/abc12345678" || r["zatsu_start"] != "1:00:00" || r["Horror"] != "1" {
		t.Fatalf("unexpected row %#v", r)
	}
}

func TestParse_ShortAndLongRows(t *testing.T) {
	t.Parallel()

	tb := Parse("a,b,c\n1\n1,2,3,4,5")
	if tb.Len() != 2 {
		t.Fatalf("rows = %d want 2", tb.Len())
	}
	if got := tb.Rows[0]; got["a"] != "1" || got["b"] != "" || got["c"] != "" {
		t.Fatalf("short row not padded: %#v", got)
	}
	if got := tb.Rows[1]; len(got) != 3 || got["c"] != "3" {
		t.Fatalf("long row not truncated: %#v", got)
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "\n\n\t\n"} {
		tb := Parse(in)
		if tb.Len() != 0 || len(tb.Header) != 0 {
			t.Fatalf("Parse(%q) = %#v want empty", in, tb)
		}
	}

	// header only
	tb := Parse("stream_link,tag")
	if tb.Len() != 0 || len(tb.Header) != 2 {
		t.Fatalf("header only table = %#v", tb)
	}
}

func TestParse_CRLF(t *testing.T) {
	t.Parallel()

	tb := Parse("a,b\r\n1,2\r\n")
	if tb.Rows[0]["b"] != "2" {
		t.Fatalf("carriage return leaked into cell: %q", tb.Rows[0]["b"])
	}
}

func TestSplitQuoted(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"comma inside quotes", `x,"hello, world"`, []string{"x", "hello, world"}},
		{"escaped quote", `"say ""hi""",2`, []string{`say "hi"`, "2"}},
		{"empty cells", ",,", []string{"", "", ""}},
		{"unterminated quote", `"a,b`, []string{"a,b"}},
		{"quote mid cell", `ab"c,d"e`, []string{"abc,de"}},
	}
	for _, c := range cases {
		if got := SplitQuoted(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s: SplitQuoted(%q) = %#v want %#v", c.name, c.in, got, c.want)
		}
	}
}

func TestNaiveAndQuotedAgreeOnSafeTables(t *testing.T) {
	t.Parallel()

	in := "stream_link,zatsu_start,Horror,Funny\nhttps://www.youtube.com/watch?v=AAAAAAAAAAA,12:00,1,0\nhttps://youtu.be/BBBBBBBBBBB,,,1"
	naive := ParseWith(in, SplitNaive)
	quoted := Parse(in)
	if !reflect.DeepEqual(naive, quoted) {
		t.Fatalf("parsers disagree:\nnaive  %#v\nquoted %#v", naive, quoted)
	}
}

func TestQuotedKeepsCommaField(t *testing.T) {
	t.Parallel()

	in := "stream_link,tag\nhttp://x/v=AAAAAAAAAAA,\"hello, world\""

	quoted := Parse(in)
	if got := quoted.Rows[0]["tag"]; got != "hello, world" {
		t.Fatalf("quoted tag = %q want %q", got, "hello, world")
	}

	naive := ParseWith(in, SplitNaive)
	if got := naive.Rows[0]["tag"]; got == "hello, world" {
		t.Fatalf("naive parser unexpectedly kept the quoted field intact")
	}
}

func TestTableHelpers(t *testing.T) {
	t.Parallel()

	tb := Parse("a,b\n1, 2 \n3,4")
	if !tb.Has("b") || tb.Has("z") {
		t.Fatalf("Has mismatch")
	}
	if tb.Len() != 2 || tb.Rows[1]["a"] != "3" {
		t.Fatalf("rows = %#v", tb.Rows)
	}
	if got := tb.Rows[0].Get("b"); got != "2" {
		t.Fatalf("Get trims: got %q", got)
	}
}
