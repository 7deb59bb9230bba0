package deploy

import (
	"reflect"
	"testing"
)

func TestParseItemized(t *testing.T) {
	t.Parallel()

	output := `sending incremental file list
>f+++++++++ 1_photography/album.txt
>f.st...... site.txt
cd+++++++++ 2_about/
*deleting   old/stale.txt
.d..t...... touched/

sent 1,234 bytes  received 56 bytes  2,580.00 bytes/sec
`

	changes := ParseItemized(output)

	want := []Change{
		{Action: ActionCreate, Path: "1_photography/album.txt"},
		{Action: ActionUpdate, Path: "site.txt"},
		{Action: ActionCreate, Path: "2_about/", IsDir: true},
		{Action: ActionDelete, Path: "old/stale.txt"},
		{Action: ActionUpdate, Path: "touched/", IsDir: true, AttrOnly: true},
	}

	if !reflect.DeepEqual(changes, want) {
		t.Errorf("ParseItemized() = %v, want %v", changes, want)
	}
}

func TestParseItemizedAttributeOnly(t *testing.T) {
	t.Parallel()

	// Metadata updates are pending work a transfer would apply; entries with
	// no change field at all are not.
	changes := ParseItemized(".f..tp..... content/.htaccess\n.f......... content/noop.txt\n")

	want := []Change{
		{Action: ActionUpdate, Path: "content/.htaccess", AttrOnly: true},
	}

	if !reflect.DeepEqual(changes, want) {
		t.Errorf("ParseItemized() = %v, want %v", changes, want)
	}
}

func TestParseItemizedEmpty(t *testing.T) {
	t.Parallel()

	if changes := ParseItemized("sending incremental file list\n\nsent 60 bytes\n"); len(changes) != 0 {
		t.Errorf("ParseItemized() = %v, want no changes", changes)
	}
}

func TestParseItemizedDeletedDirectory(t *testing.T) {
	t.Parallel()

	changes := ParseItemized("*deleting   drafts/\n")

	if len(changes) != 1 || changes[0].Action != ActionDelete || !changes[0].IsDir {
		t.Errorf("ParseItemized() = %v, want a single directory deletion", changes)
	}
}
