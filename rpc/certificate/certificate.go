// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"
	"os"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/lineaged/fault"
	"github.com/bitmark-inc/logger"
)

const validity = 10 * 365 * 24 * time.Hour

// Get - load a certificate and key pair from files and return the
// TLS configuration with the certificate fingerprint
func Get(log *logger.L, name string, certificateFileName string, keyFileName string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	keyPair, err := tls.LoadX509KeyPair(certificateFileName, keyFileName)
	if nil != err {
		log.Errorf("%s failed to load keypair: %s", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		MinVersion: tls.VersionTLS12,
	}

	fin = fingerprint(keyPair.Certificate[0])
	return tlsConfiguration, fin, nil
}

// Generate - write a new self signed certificate and its key
func Generate(name string, certificateFileName string, keyFileName string, extraHosts []string) error {
	for _, fileName := range []string{certificateFileName, keyFileName} {
		if _, err := os.Stat(fileName); nil == err {
			return fault.Detail(fault.KeyFileAlreadyExists, "%q", fileName)
		}
	}

	org := "lineaged self signed cert for: " + name
	validUntil := time.Now().Add(validity)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, false, extraHosts)
	if nil != err {
		return err
	}

	if err := os.WriteFile(certificateFileName, cert, 0666); nil != err {
		return err
	}
	if err := os.WriteFile(keyFileName, key, 0600); nil != err {
		os.Remove(certificateFileName)
		return err
	}
	return nil
}

// fingerprint - compute the fingerprint of a certificate
//
// openssl x509 -outform DER -in rpc.crt | sha3sum -a 256
func fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}
