// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/hex"
	"os"
	"strings"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/lineaged/fault"
)

const (
	taggedPublic  = "PUBLIC:"
	taggedPrivate = "PRIVATE:"
	keyLength     = 32
)

// MakeKeyPair - create a new CURVE keypair and write each half to its
// own file
func MakeKeyPair(publicKeyFileName string, privateKeyFileName string) error {
	for _, name := range []string{publicKeyFileName, privateKeyFileName} {
		if _, err := os.Stat(name); nil == err {
			return fault.Detail(fault.KeyFileAlreadyExists, "%q", name)
		}
	}

	// zmq returns Z85 text, files hold hex of the raw key
	publicKey, privateKey, err := zmq.NewCurveKeypair()
	if nil != err {
		return err
	}

	public := taggedPublic + hex.EncodeToString([]byte(zmq.Z85decode(publicKey))) + "\n"
	private := taggedPrivate + hex.EncodeToString([]byte(zmq.Z85decode(privateKey))) + "\n"

	if err := os.WriteFile(publicKeyFileName, []byte(public), 0666); nil != err {
		return err
	}
	if err := os.WriteFile(privateKeyFileName, []byte(private), 0600); nil != err {
		os.Remove(publicKeyFileName)
		return err
	}
	return nil
}

// ReadPublicKeyFile - the raw 32 byte key from a public key file
func ReadPublicKeyFile(fileName string) ([]byte, error) {
	return readKeyFile(fileName, false)
}

// ReadPrivateKeyFile - the raw 32 byte key from a private key file
func ReadPrivateKeyFile(fileName string) ([]byte, error) {
	return readKeyFile(fileName, true)
}

func readKeyFile(fileName string, wantPrivate bool) ([]byte, error) {
	data, err := os.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	key, private, err := ParseKey(string(data))
	if nil != err {
		return nil, fault.Detail(err, "file: %q", fileName)
	}
	if private != wantPrivate {
		return nil, fault.Detail(fault.InvalidKeyFile, "file: %q  private: %t", fileName, private)
	}
	return key, nil
}

// ParseKey - decode a tagged hex key, reporting whether it is private
func ParseKey(data string) ([]byte, bool, error) {
	s := strings.TrimSpace(data)

	private := false
	switch {
	case strings.HasPrefix(s, taggedPrivate):
		s = s[len(taggedPrivate):]
		private = true
	case strings.HasPrefix(s, taggedPublic):
		s = s[len(taggedPublic):]
	default:
		return nil, false, fault.InvalidKeyFile
	}

	key, err := hex.DecodeString(s)
	if nil != err || keyLength != len(key) {
		return nil, false, fault.InvalidKeyFile
	}
	return key, private, nil
}
