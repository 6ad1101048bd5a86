package tree

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"snowtree/model"
)

// LoadCoordinates 读取坐标文件，每行一个 [x, y, z] 数组，行号即 LED 编号
func LoadCoordinates(path string) ([]model.Coordinate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open coordinates: %w", err)
	}
	defer f.Close()

	coords, err := ParseCoordinates(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return coords, nil
}

// ParseCoordinates parses one JSON triple per line. Any malformed record
// fails the whole load.
func ParseCoordinates(r io.Reader) ([]model.Coordinate, error) {
	var (
		coords []model.Coordinate
		blank  int
	)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			blank++
			continue
		}
		// 空行只允许出现在文件末尾，否则 LED 编号会错位
		if blank > 0 {
			return nil, fmt.Errorf("line %d: record after blank line", line)
		}

		// json 会把 null 解码成 0，用指针区分
		var triple []*float64
		if err := json.Unmarshal([]byte(text), &triple); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(triple) != 3 {
			return nil, fmt.Errorf("line %d: expected 3 values, got %d", line, len(triple))
		}
		for k, v := range triple {
			if v == nil {
				return nil, fmt.Errorf("line %d: value %d is not a number", line, k+1)
			}
		}
		coords = append(coords, model.Coordinate{X: *triple[0], Y: *triple[1], Z: *triple[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read coordinates: %w", err)
	}
	if len(coords) == 0 {
		return nil, ErrNoCoordinates
	}
	return coords, nil
}
