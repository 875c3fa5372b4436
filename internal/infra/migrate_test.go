package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripAndSplitSQL(t *testing.T) {
	input := `-- header
CREATE TABLE a (id INT);

    -- indented comment
INSERT INTO a VALUES (1);
INSERT INTO a VALUES (2)
`
	got := SplitSQL(StripSQLComments(input))
	assert.Equal(t, []string{
		"CREATE TABLE a (id INT)",
		"INSERT INTO a VALUES (1)",
		"INSERT INTO a VALUES (2)",
	}, got)
}
