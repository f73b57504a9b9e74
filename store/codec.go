package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/expki/go-colorquant/compute"
)

// Encode writes one centroid per line with comma separated components.
func Encode(w io.Writer, centroids compute.CentroidSet) error {
	buffer := bufio.NewWriter(w)
	for _, centroid := range centroids {
		for i, value := range centroid {
			if i > 0 {
				buffer.WriteByte(',')
			}
			buffer.WriteString(strconv.FormatFloat(value, 'f', -1, 64))
		}
		buffer.WriteByte('\n')
	}
	return buffer.Flush()
}

// Decode reads centroids written by Encode. Blank lines are skipped.
func Decode(r io.Reader) (centroids compute.CentroidSet, err error) {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, ",")
		if len(fields) != len(compute.Vector3{}) {
			return nil, fmt.Errorf("line %d: expected %d components, got %d", line, len(compute.Vector3{}), len(fields))
		}
		var centroid compute.Vector3
		for i, field := range fields {
			centroid[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Join(fmt.Errorf("line %d: invalid component %q", line, field), err)
			}
		}
		centroids = append(centroids, centroid)
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Join(errors.New("failed to read centroids"), err)
	}
	return centroids, nil
}
