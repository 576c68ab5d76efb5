package domain

// Zero overwrites b with zeros. It is a best-effort hardening measure for plaintext
// private keys and content keys; protocol correctness does not depend on it.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ZeroAll zeros every slice in bs.
func ZeroAll(bs ...[]byte) {
	for _, b := range bs {
		Zero(b)
	}
}
