package memframe

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/tidwall/gjson"
)

// JSONLConf configures FromJSONL, suitable for JSON Lines data
type JSONLConf struct {
	HeaderLines   int  // The number of lines to ignore from the beginning of the input. Defaults to 0.
	Comment       rune // Lines beginning with the comment character are ignored. Defaults to no comment character.
	MaxBufferSize int  // Maximum size in bytes of the buffer used to read lines
}

// FromJSONL builds an eager Table from JSON Lines data. Columns are extracted
// from each row of JSON using their column name, which should be a gjson
// path; values which do not correspond to a column are ignored. Invalid lines
// are reported together after the whole input has been read.
func FromJSONL(r io.Reader, conf *JSONLConf, cols ...string) (Table, error) {
	if conf == nil {
		conf = &JSONLConf{}
	}
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), conf.MaxBufferSize)
	// ignore header lines, if configured to do so
	for i := 0; i < conf.HeaderLines; i++ {
		scanner.Scan()
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	values := make([][]interface{}, len(cols))
	for i := range values {
		values[i] = []interface{}{}
	}
	var multierr *multierror.Error
	numRows := 0
	lineNum := conf.HeaderLines
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if conf.Comment != 0 && rune(line[0]) == conf.Comment {
			continue
		}
		if !gjson.Valid(line) {
			multierr = multierror.Append(multierr, fmt.Errorf("line %d is not valid JSON", lineNum))
			continue
		}
		parsed := gjson.Parse(line)
		for i, col := range cols {
			values[i] = append(values[i], jsonValue(parsed.Get(col)))
		}
		numRows++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return nil, err
	}
	columns := make([]column, len(cols))
	for i, name := range cols {
		columns[i] = column{name: name, values: values[i]}
	}
	return createTableImpl(columns, numRows), nil
}

// jsonValue maps a gjson result to a cell value. Missing and null values
// become nil cells.
func jsonValue(res gjson.Result) interface{} {
	switch res.Type {
	case gjson.String:
		return res.String()
	case gjson.Number:
		return res.Float()
	case gjson.True:
		return true
	case gjson.False:
		return false
	default:
		return nil
	}
}
