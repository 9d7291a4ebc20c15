/*
Package mongotable loads dataset.Tables from a MongoDB collection.

Every document in the collection is expected to carry a numeric
value for each feature column and an integer value for the label
column.
*/
package mongotable

import (
	"fmt"

	"github.com/thicketml/thicket/dataset"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

/*
Open takes a MongoDB connection URL, the name of a collection, the
names of the feature columns and the name of the label column,
dials the database and returns the table read from the collection.
The URL must include the database name.
*/
func Open(url, collection string, columns []string, label string) (*dataset.Table, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB at %s: %v", url, err)
	}
	defer session.Close()
	return Read(session.DB("").C(collection), columns, label)
}

/*
Read takes a MongoDB collection, the names of the feature columns
and the name of the label column and returns the table read from
the collection's documents, or an error if a document is missing a
column or holds a non-numeric value for it.
*/
func Read(c *mgo.Collection, columns []string, label string) (*dataset.Table, error) {
	var features [][]float64
	var labels []int
	iter := c.Find(nil).Iter()
	defer iter.Close()
	var doc bson.M
	for i := 0; iter.Next(&doc); i++ {
		row := make([]float64, len(columns))
		for j, name := range columns {
			v, err := numericValue(doc[name])
			if err != nil {
				return nil, fmt.Errorf("reading document %d of %s: column %q: %v", i, c.Name, name, err)
			}
			row[j] = v
		}
		l, err := numericValue(doc[label])
		if err != nil {
			return nil, fmt.Errorf("reading document %d of %s: label %q: %v", i, c.Name, label, err)
		}
		features = append(features, row)
		labels = append(labels, int(l))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("iterating over %s: %v", c.Name, err)
	}
	return dataset.New(features, labels)
}

func numericValue(v interface{}) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case nil:
		return 0, fmt.Errorf("value is not defined")
	}
	return 0, fmt.Errorf("value %v of type %T is not numeric", v, v)
}
