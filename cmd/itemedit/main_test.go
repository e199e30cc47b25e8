package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectEditArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"itemedit"},
			want: []string{"itemedit"},
		},
		{
			name: "direct item id first token",
			in:   []string{"itemedit", "item-1"},
			want: []string{"itemedit", "items", "edit", "item-1"},
		},
		{
			name: "direct item id after value flag",
			in:   []string{"itemedit", "--db", "./tmp.sqlite", "item-1723456789000"},
			want: []string{"itemedit", "--db", "./tmp.sqlite", "items", "edit", "item-1723456789000"},
		},
		{
			name: "direct item id after equals flag",
			in:   []string{"itemedit", "--user=Jane Doe", "item-1"},
			want: []string{"itemedit", "--user=Jane Doe", "items", "edit", "item-1"},
		},
		{
			name: "direct item id after bool flag",
			in:   []string{"itemedit", "--pretty", "item-1"},
			want: []string{"itemedit", "--pretty", "items", "edit", "item-1"},
		},
		{
			name: "direct item id after double dash",
			in:   []string{"itemedit", "--log-file", "x.log", "--", "item-1"},
			want: []string{"itemedit", "--log-file", "x.log", "--", "items", "edit", "item-1"},
		},
		{
			name: "bare prefix is not an id",
			in:   []string{"itemedit", "item-"},
			want: []string{"itemedit", "item-"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"itemedit", "items", "show", "item-1"},
			want: []string{"itemedit", "items", "show", "item-1"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"itemedit", "wat"},
			want: []string{"itemedit", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectEditArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectEditArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
