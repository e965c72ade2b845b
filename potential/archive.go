/*
 * archive.go, part of goaenet.
 *
 *
 * Copyright 2024 Raul Mera <rmeraa{at}academicosdotutadotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package potential

import (
	"archive/tar"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
	aenet "github.com/rmera/goaenet"
)

//The manifest travels as the first archive entry, ahead of the binary
//payloads.
const manifestName = "manifest.json"

type manifest struct {
	ID       string               `json:"id"`
	Elements []string             `json:"elements"`
	Sums     map[string]string    `json:"md5"`
	Curve    *aenet.TrainingCurve `json:"curve,omitempty"`
}

//Save archives the potential to a single zstd-compressed tar file with
//the given name. The archive holds a JSON manifest plus the raw network
//files, so it stays readable with standard tools.
func (P *Potential) Save(name string) error {
	errid := "potential.Potential.Save"
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	defer f.Close()
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	tw := tar.NewWriter(zw)
	man, err := json.Marshal(manifest{ID: P.ID, Elements: P.Elements, Sums: P.Sums, Curve: P.Curve})
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	now := time.Now()
	entries := [][2]interface{}{{manifestName, man}}
	for _, el := range P.Elements {
		fname := NetworkFileName(el)
		entries = append(entries, [2]interface{}{fname, P.Files[fname]})
	}
	for _, e := range entries {
		ename := e[0].(string)
		data := e[1].([]byte)
		hdr := &tar.Header{Name: ename, Mode: 0644, Size: int64(len(data)), ModTime: now}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("%s: %w", errid, err)
		}
		if _, err := tw.Write(data); err != nil {
			return fmt.Errorf("%s: %w", errid, err)
		}
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

//Load reads back an archive written by Save and verifies the payload
//checksums against the manifest.
func Load(name string) (*Potential, error) {
	errid := "potential.Load"
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	defer f.Close()
	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	defer zr.Close()
	tr := tar.NewReader(zr)
	var man *manifest
	files := make(map[string][]byte)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errid, err)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errid, err)
		}
		if hdr.Name == manifestName {
			man = new(manifest)
			if err := json.Unmarshal(data, man); err != nil {
				return nil, fmt.Errorf("%s: Bad manifest: %w", errid, err)
			}
			continue
		}
		files[hdr.Name] = data
	}
	if man == nil {
		return nil, fmt.Errorf("%s: The archive %s carries no manifest", errid, name)
	}
	P, err := New(man.ID, man.Elements, files, man.Curve)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	for fname, sum := range man.Sums {
		if P.Sums[fname] != sum {
			return nil, fmt.Errorf("%s: Checksum mismatch for %s in %s", errid, fname, name)
		}
	}
	return P, nil
}
