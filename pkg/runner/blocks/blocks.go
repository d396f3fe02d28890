package blocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/glyph"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/schedule"
)

// Get prints the configured time blocks.
type Get struct {
	Service *app.Service
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get blocks, no service")
	}

	blocks, err := n.Service.TimeBlocks()
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.TitleWithCount("Time blocks", len(blocks))
	if len(blocks) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none configured; the whole day classifies as work\n\n")
		return nil
	}
	for _, b := range blocks {
		label := b.Label
		if label != "" {
			label = "  " + label
		}
		fmt.Printf(" %s %s-%s %s%s\n", glyph.Block(string(b.Type)).Symbol, b.Start, b.End, b.Type, label)
	}
	fmt.Println("")
	return nil
}

// Set replaces the block configuration. Specs use the form
// "HH:mm-HH:mm:type[:label]"; overlapping sets are rejected before saving.
type Set struct {
	Specs   []string
	Service *app.Service
}

func (n *Set) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not set blocks, no service")
	}

	blocks := make([]schedule.TimeBlock, 0, len(n.Specs))
	for _, spec := range n.Specs {
		block, err := ParseSpec(spec)
		if err != nil {
			return err
		}
		blocks = append(blocks, block)
	}

	if err := n.Service.SetTimeBlocks(blocks); err != nil {
		return err
	}
	fmt.Printf("saved %d time blocks\n", len(blocks))
	return nil
}

// ParseSpec reads one "HH:mm-HH:mm:type[:label]" block definition.
func ParseSpec(spec string) (schedule.TimeBlock, error) {
	ends := strings.SplitN(spec, "-", 2)
	if len(ends) != 2 {
		return schedule.TimeBlock{}, fmt.Errorf("blocks: invalid spec %q, want HH:mm-HH:mm:type[:label]", spec)
	}

	// ends[1] is "HH:mm:type[:label]".
	tail := strings.SplitN(ends[1], ":", 4)
	if len(tail) < 3 {
		return schedule.TimeBlock{}, fmt.Errorf("blocks: missing type in %q", spec)
	}
	typ, err := schedule.ParseBlockType(tail[2])
	if err != nil {
		return schedule.TimeBlock{}, err
	}

	block := schedule.TimeBlock{
		Start: ends[0],
		End:   tail[0] + ":" + tail[1],
		Type:  typ,
	}
	if len(tail) == 4 {
		block.Label = tail[3]
	}
	return block, nil
}
