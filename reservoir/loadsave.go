// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/shiftnrg/shiftd/account"
	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/transaction"
)

type tagType byte

// record types in cache file
const (
	taggedBOF         tagType = iota
	taggedEOF         tagType = iota
	taggedTransaction tagType = iota
)

// the BOF tag to check file version
// exact match is required
var bofData = []byte("shiftd-cache v1.0")

// LoadFromFile - re-admit the transactions of a previous run
//
// each one is verified again so a changed ledger drops stale entries
func (r *Reservoir) LoadFromFile() error {
	log := r.log

	f, err := os.Open(r.filename)
	if os.IsNotExist(err) {
		return nil
	}
	if nil != err {
		return err
	}
	defer f.Close()
	reader := bufio.NewReader(f)

	// must have BOF record first
	tag, packed, err := readRecord(reader)
	if nil != err {
		return err
	}
	if taggedBOF != tag {
		return fmt.Errorf("expected BOF: %d but read: %d", taggedBOF, tag)
	}
	if !bytes.Equal(bofData, packed) {
		return fmt.Errorf("expected BOF: %q but read: %q", bofData, packed)
	}

	log.Infof("restore from file: %s", r.filename)

	count := 0
restore_loop:
	for {
		tag, packed, err := readRecord(reader)
		if nil != err {
			return err
		}
		switch tag {

		case taggedEOF:
			break restore_loop

		case taggedTransaction:
			tx, err := r.unpackTransaction(packed)
			if nil != err {
				log.Errorf("unable to unpack transaction: %s", err)
				continue restore_loop
			}
			if _, err := r.Admit(tx); nil != err {
				log.Warnf("drop restored %s from: %s  error: %s", tx.Type, tx.SenderId, err)
				continue restore_loop
			}
			count += 1

		default:
			log.Errorf("read invalid tag: 0x%02x", tag)
			return fmt.Errorf("read invalid tag: 0x%02x", tag)
		}
	}
	log.Infof("restore completed: %d transactions", count)
	return nil
}

// SaveToFile - write the pool in admission order
func (r *Reservoir) SaveToFile() error {
	log := r.log
	log.Info("saving…")

	r.pool.Lock()
	entries := make([]*entry, 0, len(r.pool.entries))
	for _, e := range r.pool.entries {
		entries = append(entries, e)
	}
	r.pool.Unlock()
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].sequence < entries[j].sequence
	})

	f, err := os.OpenFile(r.filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if nil != err {
		return err
	}
	defer f.Close()
	writer := bufio.NewWriter(f)

	// write beginning of file marker
	if err := writeRecord(writer, taggedBOF, bofData); nil != err {
		return err
	}
	for _, e := range entries {
		packed, err := packTransaction(e.tx)
		if nil != err {
			log.Errorf("unable to pack %s from: %s  error: %s", e.tx.Type, e.tx.SenderId, err)
			continue
		}
		if err := writeRecord(writer, taggedTransaction, packed); nil != err {
			return err
		}
	}
	// end the file
	if err := writeRecord(writer, taggedEOF, []byte("EOF")); nil != err {
		return err
	}
	if err := writer.Flush(); nil != err {
		return err
	}

	log.Infof("save completed: %d transactions", len(entries))
	return nil
}

// type ++ timestamp ++ amount ++ fee ++ fields...
// where each field is a 16 bit length followed by its bytes
func packTransaction(tx *transaction.Transaction) ([]byte, error) {
	if len(tx.Signatures) > 255 {
		return nil, fault.InvalidCount
	}
	asset := []byte{}
	if nil != tx.Asset {
		asset = tx.Asset.Pack()
	}

	buffer := make([]byte, 21)
	buffer[0] = byte(tx.Type)
	binary.BigEndian.PutUint32(buffer[1:], tx.Timestamp)
	binary.BigEndian.PutUint64(buffer[5:], tx.Amount)
	binary.BigEndian.PutUint64(buffer[13:], tx.Fee)

	buffer = appendField(buffer, tx.SenderPublicKey)
	buffer = appendField(buffer, tx.SenderId.Bytes())
	buffer = appendField(buffer, tx.RecipientId.Bytes())
	buffer = appendField(buffer, asset)
	buffer = appendField(buffer, tx.Signature)
	buffer = append(buffer, byte(len(tx.Signatures)))
	for _, s := range tx.Signatures {
		buffer = appendField(buffer, s)
	}
	return buffer, nil
}

func (r *Reservoir) unpackTransaction(packed []byte) (*transaction.Transaction, error) {
	if len(packed) < 21 {
		return nil, fault.InvalidCount
	}
	tx := &transaction.Transaction{
		Type:      transaction.Type(packed[0]),
		Timestamp: binary.BigEndian.Uint32(packed[1:]),
		Amount:    binary.BigEndian.Uint64(packed[5:]),
		Fee:       binary.BigEndian.Uint64(packed[13:]),
	}
	h, ok := r.handlers[tx.Type]
	if !ok {
		return nil, fault.InvalidTransactionType
	}

	fields := make([][]byte, 5)
	rest := packed[21:]
	var err error
	for i := range fields {
		if fields[i], rest, err = nextField(rest); nil != err {
			return nil, err
		}
	}
	tx.SenderPublicKey = fields[0]
	tx.SenderId = account.Address(fields[1])
	tx.RecipientId = account.Address(fields[2])
	if tx.Asset, err = h.DecodeAsset(fields[3]); nil != err {
		return nil, err
	}
	if len(fields[4]) > 0 {
		tx.Signature = fields[4]
	}

	if len(rest) < 1 {
		return nil, fault.InvalidCount
	}
	count := int(rest[0])
	rest = rest[1:]
	for i := 0; i < count; i += 1 {
		var s []byte
		if s, rest, err = nextField(rest); nil != err {
			return nil, err
		}
		tx.Signatures = append(tx.Signatures, s)
	}
	return tx, nil
}

func appendField(buffer []byte, field []byte) []byte {
	n := make([]byte, 2)
	binary.BigEndian.PutUint16(n, uint16(len(field)))
	buffer = append(buffer, n...)
	return append(buffer, field...)
}

func nextField(buffer []byte) ([]byte, []byte, error) {
	if len(buffer) < 2 {
		return nil, nil, fault.InvalidCount
	}
	n := int(binary.BigEndian.Uint16(buffer))
	if len(buffer) < 2+n {
		return nil, nil, fault.InvalidCount
	}
	field := make([]byte, n)
	copy(field, buffer[2:])
	return field, buffer[2+n:], nil
}

// write a tagged record
func writeRecord(w io.Writer, tag tagType, packed []byte) error {
	if len(packed) > 65535 {
		fault.Panicf("write record packed length: %d > 65535", len(packed))
	}

	header := make([]byte, 3)
	header[0] = byte(tag)
	binary.BigEndian.PutUint16(header[1:], uint16(len(packed)))
	if _, err := w.Write(header); nil != err {
		return err
	}
	_, err := w.Write(packed)
	return err
}

func readRecord(r io.Reader) (tagType, []byte, error) {
	header := make([]byte, 3)
	if _, err := io.ReadFull(r, header); nil != err {
		return taggedEOF, []byte{}, err
	}

	count := int(binary.BigEndian.Uint16(header[1:]))
	buffer := make([]byte, count)
	if _, err := io.ReadFull(r, buffer); nil != err {
		return taggedEOF, []byte{}, err
	}
	return tagType(header[0]), buffer, nil
}
