// Package oid maps dotted object identifier strings to symbolic names for
// display. The built-in table covers the identifiers commonly embedded in
// certificate, key, and signature structures.
package oid

// Registry is an immutable mapping from dotted object identifier form to
// symbolic name. A Registry is never mutated after construction and is safe
// for concurrent lookups without locking.
type Registry struct {
	names map[string]string
}

// defaultRegistry wraps the built-in table. Built once; shared read-only.
var defaultRegistry = &Registry{names: builtin}

// Default returns the shared Registry holding the built-in table.
func Default() *Registry {
	return defaultRegistry
}

// New builds a Registry from the built-in table plus the given extra
// entries, keyed by dotted form. Extra entries override built-in names for
// the same identifier. The input map is copied; later changes to it do not
// affect the Registry.
func New(extra map[string]string) *Registry {
	names := make(map[string]string, len(builtin)+len(extra))
	for dotted, name := range builtin {
		names[dotted] = name
	}
	for dotted, name := range extra {
		names[dotted] = name
	}
	return &Registry{names: names}
}

// Lookup returns the symbolic name registered for the dotted identifier.
// A miss is expected for uncommon identifiers; callers fall back to the
// dotted form.
func (r *Registry) Lookup(dotted string) (string, bool) {
	name, ok := r.names[dotted]
	return name, ok
}

// Len returns the number of registered identifiers.
func (r *Registry) Len() int {
	return len(r.names)
}

// builtin is the default identifier table.
var builtin = map[string]string{
	// PKCS #1 signature and encryption algorithms.
	"1.2.840.113549.1.1.1":  "rsaEncryption",
	"1.2.840.113549.1.1.2":  "md2WithRSAEncryption",
	"1.2.840.113549.1.1.4":  "md5WithRSAEncryption",
	"1.2.840.113549.1.1.5":  "sha1WithRSAEncryption",
	"1.2.840.113549.1.1.7":  "rsaOAEP",
	"1.2.840.113549.1.1.8":  "mgf1",
	"1.2.840.113549.1.1.10": "rsaPSS",
	"1.2.840.113549.1.1.11": "sha256WithRSAEncryption",
	"1.2.840.113549.1.1.12": "sha384WithRSAEncryption",
	"1.2.840.113549.1.1.13": "sha512WithRSAEncryption",

	// DSA and ECDSA.
	"1.2.840.10040.4.1":   "dsa",
	"1.2.840.10040.4.3":   "dsaWithSHA1",
	"1.2.840.10045.2.1":   "ecPublicKey",
	"1.2.840.10045.4.1":   "ecdsaWithSHA1",
	"1.2.840.10045.4.3.2": "ecdsaWithSHA256",
	"1.2.840.10045.4.3.3": "ecdsaWithSHA384",
	"1.2.840.10045.4.3.4": "ecdsaWithSHA512",

	// Named elliptic curves.
	"1.2.840.10045.3.1.7": "prime256v1",
	"1.3.132.0.10":        "secp256k1",
	"1.3.132.0.34":        "secp384r1",
	"1.3.132.0.35":        "secp521r1",

	// Modern curve key types (RFC 8410).
	"1.3.101.110": "x25519",
	"1.3.101.111": "x448",
	"1.3.101.112": "ed25519",
	"1.3.101.113": "ed448",

	// Digest algorithms.
	"1.2.840.113549.2.5":     "md5",
	"1.2.840.113549.2.7":     "hmacWithSHA1",
	"1.2.840.113549.2.9":     "hmacWithSHA256",
	"1.2.840.113549.2.11":    "hmacWithSHA512",
	"1.3.14.3.2.26":          "sha1",
	"2.16.840.1.101.3.4.2.1": "sha256",
	"2.16.840.1.101.3.4.2.2": "sha384",
	"2.16.840.1.101.3.4.2.3": "sha512",
	"2.16.840.1.101.3.4.2.4": "sha224",

	// Symmetric encryption.
	"1.2.840.113549.3.2":      "rc2CBC",
	"1.2.840.113549.3.7":      "desEDE3CBC",
	"2.16.840.1.101.3.4.1.2":  "aes128CBC",
	"2.16.840.1.101.3.4.1.6":  "aes128GCM",
	"2.16.840.1.101.3.4.1.22": "aes192CBC",
	"2.16.840.1.101.3.4.1.42": "aes256CBC",
	"2.16.840.1.101.3.4.1.46": "aes256GCM",

	// PKCS #5 password-based cryptography.
	"1.2.840.113549.1.5.12": "pbkdf2",
	"1.2.840.113549.1.5.13": "pbes2",

	// PKCS #7 / CMS content types.
	"1.2.840.113549.1.7.1": "data",
	"1.2.840.113549.1.7.2": "signedData",
	"1.2.840.113549.1.7.3": "envelopedData",
	"1.2.840.113549.1.7.5": "digestedData",
	"1.2.840.113549.1.7.6": "encryptedData",

	// PKCS #9 attributes.
	"1.2.840.113549.1.9.1":       "emailAddress",
	"1.2.840.113549.1.9.3":       "contentType",
	"1.2.840.113549.1.9.4":       "messageDigest",
	"1.2.840.113549.1.9.5":       "signingTime",
	"1.2.840.113549.1.9.6":       "counterSignature",
	"1.2.840.113549.1.9.15":      "smimeCapabilities",
	"1.2.840.113549.1.9.16.1.4":  "tstInfo",
	"1.2.840.113549.1.9.16.2.14": "signatureTimeStampToken",

	// Distinguished name attribute types.
	"2.5.4.3":  "commonName",
	"2.5.4.4":  "surname",
	"2.5.4.5":  "serialNumber",
	"2.5.4.6":  "countryName",
	"2.5.4.7":  "localityName",
	"2.5.4.8":  "stateOrProvinceName",
	"2.5.4.9":  "streetAddress",
	"2.5.4.10": "organizationName",
	"2.5.4.11": "organizationalUnitName",
	"2.5.4.12": "title",
	"2.5.4.42": "givenName",
	"2.5.4.43": "initials",
	"2.5.4.46": "dnQualifier",
	"2.5.4.65": "pseudonym",

	// Directory strings carried outside X.500 (PKCS #9 / LDAP).
	"0.9.2342.19200300.100.1.1":  "userID",
	"0.9.2342.19200300.100.1.25": "domainComponent",

	// X.509 certificate extensions.
	"2.5.29.14": "subjectKeyIdentifier",
	"2.5.29.15": "keyUsage",
	"2.5.29.17": "subjectAlternativeName",
	"2.5.29.18": "issuerAlternativeName",
	"2.5.29.19": "basicConstraints",
	"2.5.29.20": "cRLNumber",
	"2.5.29.21": "reasonCode",
	"2.5.29.30": "nameConstraints",
	"2.5.29.31": "cRLDistributionPoints",
	"2.5.29.32": "certificatePolicies",
	"2.5.29.35": "authorityKeyIdentifier",
	"2.5.29.36": "policyConstraints",
	"2.5.29.37": "extendedKeyUsage",

	// PKIX access descriptors and extended key usages.
	"1.3.6.1.5.5.7.1.1":  "authorityInfoAccess",
	"1.3.6.1.5.5.7.3.1":  "serverAuth",
	"1.3.6.1.5.5.7.3.2":  "clientAuth",
	"1.3.6.1.5.5.7.3.3":  "codeSigning",
	"1.3.6.1.5.5.7.3.4":  "emailProtection",
	"1.3.6.1.5.5.7.3.8":  "timeStamping",
	"1.3.6.1.5.5.7.3.9":  "ocspSigning",
	"1.3.6.1.5.5.7.48.1": "ocsp",
	"1.3.6.1.5.5.7.48.2": "caIssuers",
}
