//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
)

// fitted models are stored as gzipped JSON keyed by fingerprint
// compressed is c. 33% of original

// packblob - ModelBlob into gzipped JSON bytes
func packblob(mb *ModelBlob) ([]byte, error) {
	const (
		GZ = gzip.BestSpeed
	)

	eb, err := json.Marshal(mb)
	if err != nil {
		return nil, fmt.Errorf("packblob() failed when calling json.Marshal(): %w", err)
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, GZ)
	if err != nil {
		return nil, err
	}
	if _, err = zw.Write(eb); err != nil {
		return nil, err
	}
	if err = zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unpackblob - gzipped JSON bytes back into a ModelBlob
func unpackblob(b []byte) (*ModelBlob, error) {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("unpackblob() gzip.NewReader failed: %w", err)
	}
	decompr, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	if err = zr.Close(); err != nil {
		return nil, err
	}

	var mb ModelBlob
	if err = json.Unmarshal(decompr, &mb); err != nil {
		return nil, fmt.Errorf("unpackblob() failed when calling json.Unmarshal(): %w", err)
	}
	return &mb, nil
}
