package datastructure

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/navigatorx-leaps/pkg"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/geo"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/util"
)

func (g *SegmentGraph) WriteGraph(filename string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", filename, cErr)
		}
	}()

	return g.WriteGraphTo(f)
}

// WriteGraphTo writes the bzip2 compressed text form of the graph:
// header "numSegments numEdges", then one line per segment, then one "tail head" line per edge.
func (g *SegmentGraph) WriteGraphTo(out io.Writer) error {
	bz, err := bzip2.NewWriter(out, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%d %d\n", g.NumberOfSegments(), g.NumberOfEdges())

	for id, s := range g.segments {
		info := g.infos[id]
		fmt.Fprintf(w, "%d %d %d %t %s %s %s %s %s %s %t\n",
			s.mwmId, s.featureId, s.segmentIdx, s.forward,
			formatFloat(info.eta), formatFloat(info.length),
			formatFloat(info.start.Lat), formatFloat(info.start.Lon),
			formatFloat(info.end.Lat), formatFloat(info.end.Lon),
			info.trafficLight)
	}

	for u := Index(0); u < Index(len(g.segments)); u++ {
		g.ForOutEdgesOf(u, func(head Index) {
			fmt.Fprintf(w, "%d %d\n", u, head)
		})
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return bz.Close()
}

func ReadGraph(filename string) (*SegmentGraph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	return ReadGraphFrom(f)
}

func ReadGraphFrom(in io.Reader) (*SegmentGraph, error) {
	bz, err := bzip2.NewReader(in, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	tokens := fields(line)
	if len(tokens) != 2 {
		return nil, fmt.Errorf("header: expected 2 fields, got %d", len(tokens))
	}

	numSegments, err := ParseIndex(tokens[0])
	if err != nil {
		return nil, err
	}
	numEdges, err := ParseIndex(tokens[1])
	if err != nil {
		return nil, err
	}

	builder := NewSegmentGraphBuilder()
	for i := 0; i < int(numSegments); i++ {
		segmentLine, err := util.ReadLine(br)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		s, info, err := parseSegmentLine(segmentLine)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		if _, err := builder.AddSegment(s, info); err != nil {
			return nil, err
		}
	}

	for i := 0; i < int(numEdges); i++ {
		edgeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		tokens := fields(edgeLine)
		if len(tokens) != 2 {
			return nil, fmt.Errorf("edge %d: expected 2 fields, got %d", i, len(tokens))
		}
		tail, err := ParseIndex(tokens[0])
		if err != nil {
			return nil, err
		}
		head, err := ParseIndex(tokens[1])
		if err != nil {
			return nil, err
		}
		if err := builder.addEdgeById(tail, head); err != nil {
			return nil, err
		}
	}

	return builder.Build(), nil
}

func parseSegmentLine(line string) (Segment, SegmentInfo, error) {
	tokens := fields(line)
	if len(tokens) != 11 {
		return Segment{}, SegmentInfo{}, fmt.Errorf("expected 11 fields, got %d", len(tokens))
	}

	s, err := parseSegmentFields(tokens[:4])
	if err != nil {
		return Segment{}, SegmentInfo{}, err
	}

	floats := make([]float64, 6)
	for i := range floats {
		floats[i], err = strconv.ParseFloat(tokens[4+i], 64)
		if err != nil {
			return Segment{}, SegmentInfo{}, fmt.Errorf("field %d: %w", 4+i, err)
		}
	}

	trafficLight, err := strconv.ParseBool(tokens[10])
	if err != nil {
		return Segment{}, SegmentInfo{}, fmt.Errorf("traffic light: %w", err)
	}

	info := NewSegmentInfo(floats[0], floats[1], geo.NewCoordinate(floats[2], floats[3]),
		geo.NewCoordinate(floats[4], floats[5]), trafficLight)
	return s, info, nil
}

func parseSegmentFields(tokens []string) (Segment, error) {
	mwmId, err := strconv.ParseUint(tokens[0], 10, 16)
	if err != nil {
		return Segment{}, fmt.Errorf("mwmId: %w", err)
	}
	featureId, err := ParseIndex(tokens[1])
	if err != nil {
		return Segment{}, fmt.Errorf("featureId: %w", err)
	}
	segmentIdx, err := ParseIndex(tokens[2])
	if err != nil {
		return Segment{}, fmt.Errorf("segmentIdx: %w", err)
	}
	forward, err := strconv.ParseBool(tokens[3])
	if err != nil {
		return Segment{}, fmt.Errorf("forward: %w", err)
	}
	return NewSegment(pkg.NumMwmId(mwmId), uint32(featureId), uint32(segmentIdx), forward), nil
}

// ParseSegment parses "mwmId:featureId:segmentIdx:forward", e.g. "3:1024:7:true".
func ParseSegment(s string) (Segment, error) {
	tokens := strings.Split(s, ":")
	if len(tokens) != 4 {
		return Segment{}, fmt.Errorf("segment %q: expected 4 fields, got %d", s, len(tokens))
	}
	return parseSegmentFields(tokens)
}

func FormatSegment(s Segment) string {
	return fmt.Sprintf("%d:%d:%d:%t", s.mwmId, s.featureId, s.segmentIdx, s.forward)
}

// ReadRoutes reads one route per line, segments separated by whitespace. blank lines and lines starting with '#' are skipped.
func ReadRoutes(in io.Reader) ([][]Segment, error) {
	br := bufio.NewReader(in)
	routes := make([][]Segment, 0)
	for lineNo := 1; ; lineNo++ {
		line, err := util.ReadLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens := fields(line)
		route := make([]Segment, 0, len(tokens))
		for _, tok := range tokens {
			s, err := ParseSegment(tok)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			route = append(route, s)
		}
		routes = append(routes, route)
	}
	return routes, nil
}

func WriteRoutes(out io.Writer, routes [][]Segment) error {
	w := bufio.NewWriter(out)
	for _, route := range routes {
		for i, s := range route {
			if i > 0 {
				w.WriteByte(' ')
			}
			w.WriteString(FormatSegment(s))
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}

func fields(s string) []string {
	return strings.Fields(s)
}

func ParseIndex(s string) (Index, error) {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if u > math.MaxUint32 {
		return 0, fmt.Errorf("value %s overflows uint32", s)
	}
	return Index(u), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
