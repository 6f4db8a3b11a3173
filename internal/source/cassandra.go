package source

import (
	"context"
	"fmt"

	"github.com/gocql/gocql"
	"github.com/rebeliceyang/filtergrid/internal/logging"
	"github.com/rebeliceyang/filtergrid/internal/models"
)

// Cassandra runs a CQL query against a keyspace
type Cassandra struct {
	Hosts    []string
	Keyspace string
	Query    string
	logger   logging.Logger
}

// NewCassandra creates a Cassandra source
func NewCassandra(hosts []string, keyspace, query string, logger logging.Logger) *Cassandra {
	return &Cassandra{Hosts: hosts, Keyspace: keyspace, Query: query, logger: logger}
}

func (c *Cassandra) Name() string {
	return "cassandra:" + c.Keyspace
}

func (c *Cassandra) Load(ctx context.Context) (*models.Table, error) {
	if c.Query == "" {
		return nil, fmt.Errorf("cassandra source requires a query or table")
	}

	cluster := gocql.NewCluster(c.Hosts...)
	cluster.Keyspace = c.Keyspace
	cluster.Consistency = gocql.LocalOne
	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cassandra: %w", err)
	}
	defer session.Close()

	c.logger.Debug("running cql query", "keyspace", c.Keyspace, "query", c.Query)
	iter := session.Query(c.Query).WithContext(ctx).Iter()

	infos := iter.Columns()
	columns := make([]string, len(infos))
	var boolColumns []int
	for i, info := range infos {
		columns[i] = info.Name
		if info.TypeInfo.Type() == gocql.TypeBoolean {
			boolColumns = append(boolColumns, i)
		}
	}

	tbl := models.NewTable(c.Keyspace, columns)
	row := map[string]interface{}{}
	for iter.MapScan(row) {
		record := make([]string, len(columns))
		for i, name := range columns {
			record[i] = formatValue(row[name])
		}
		tbl.AppendTextRow(record)
		row = map[string]interface{}{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	tbl.MarkCheckable(boolColumns...)
	return tbl, nil
}
