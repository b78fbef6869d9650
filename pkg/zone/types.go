package zone

import (
	"strings"

	"github.com/miekg/dns"
)

type fieldKind uint8

const (
	fieldName fieldKind = iota
	fieldString
	fieldInt8
	fieldInt16
	fieldInt32
	fieldTTL
	fieldIP4
	fieldIP6
	fieldType // type mnemonic, e.g. the RRSIG covered type
	fieldTime // YYYYMMDDHHmmSS or seconds since epoch
	fieldBase32Hex
	fieldSalt
	fieldCAATag

	// tail fields consume the rest of the rdata
	fieldStrings
	fieldBase64
	fieldHex
	fieldTypeBitmap
	fieldUnbounded // raw bytes of one final token, no length prefix
)

func (k fieldKind) tail() bool {
	return k >= fieldStrings
}

type field struct {
	name string
	kind fieldKind
}

// typeInfo describes the rdata field sequence of one record type. A nil
// field list reserves the mnemonic: the type is recognized but only the
// RFC 3597 generic form can express its rdata.
type typeInfo struct {
	code   uint16
	name   string
	fields []field
}

var (
	typeTable = map[uint16]*typeInfo{}
	typeNames = map[string]*typeInfo{}
)

func register(code uint16, fields ...field) {
	info := &typeInfo{code: code, name: dns.TypeToString[code], fields: fields}
	typeTable[code] = info
	typeNames[info.name] = info
}

func reserve(code uint16) {
	info := &typeInfo{code: code, name: dns.TypeToString[code]}
	typeTable[code] = info
	typeNames[info.name] = info
}

func init() {
	register(dns.TypeA, field{"address", fieldIP4})
	register(dns.TypeNS, field{"nsdname", fieldName})
	register(dns.TypeCNAME, field{"cname", fieldName})
	register(dns.TypeSOA,
		field{"mname", fieldName}, field{"rname", fieldName},
		field{"serial", fieldInt32}, field{"refresh", fieldTTL},
		field{"retry", fieldTTL}, field{"expire", fieldTTL},
		field{"minimum", fieldTTL})
	register(dns.TypePTR, field{"ptrdname", fieldName})
	register(dns.TypeHINFO, field{"cpu", fieldString}, field{"os", fieldString})
	register(dns.TypeMX, field{"preference", fieldInt16}, field{"exchange", fieldName})
	register(dns.TypeTXT, field{"text", fieldStrings})
	register(dns.TypeRP, field{"mbox", fieldName}, field{"txt", fieldName})
	register(dns.TypeAAAA, field{"address", fieldIP6})
	register(dns.TypeSRV,
		field{"priority", fieldInt16}, field{"weight", fieldInt16},
		field{"port", fieldInt16}, field{"target", fieldName})
	register(dns.TypeNAPTR,
		field{"order", fieldInt16}, field{"preference", fieldInt16},
		field{"flags", fieldString}, field{"services", fieldString},
		field{"regexp", fieldString}, field{"replacement", fieldName})
	register(dns.TypeDNAME, field{"target", fieldName})
	register(dns.TypeDS,
		field{"keytag", fieldInt16}, field{"algorithm", fieldInt8},
		field{"digtype", fieldInt8}, field{"digest", fieldHex})
	register(dns.TypeSSHFP,
		field{"algorithm", fieldInt8}, field{"type", fieldInt8},
		field{"fingerprint", fieldHex})
	register(dns.TypeRRSIG,
		field{"covered", fieldType}, field{"algorithm", fieldInt8},
		field{"labels", fieldInt8}, field{"origttl", fieldTTL},
		field{"expiration", fieldTime}, field{"inception", fieldTime},
		field{"keytag", fieldInt16}, field{"signer", fieldName},
		field{"signature", fieldBase64})
	register(dns.TypeNSEC, field{"next", fieldName}, field{"types", fieldTypeBitmap})
	register(dns.TypeDNSKEY,
		field{"flags", fieldInt16}, field{"protocol", fieldInt8},
		field{"algorithm", fieldInt8}, field{"publickey", fieldBase64})
	register(dns.TypeNSEC3,
		field{"hash", fieldInt8}, field{"flags", fieldInt8},
		field{"iterations", fieldInt16}, field{"salt", fieldSalt},
		field{"nexthash", fieldBase32Hex}, field{"types", fieldTypeBitmap})
	register(dns.TypeNSEC3PARAM,
		field{"hash", fieldInt8}, field{"flags", fieldInt8},
		field{"iterations", fieldInt16}, field{"salt", fieldSalt})
	register(dns.TypeTLSA,
		field{"usage", fieldInt8}, field{"selector", fieldInt8},
		field{"matching", fieldInt8}, field{"certdata", fieldHex})
	register(dns.TypeSPF, field{"text", fieldStrings})
	register(dns.TypeCAA,
		field{"flags", fieldInt8}, field{"tag", fieldCAATag},
		field{"value", fieldUnbounded})
	register(dns.TypeURI,
		field{"priority", fieldInt16}, field{"weight", fieldInt16},
		field{"target", fieldUnbounded})

	// service bindings carry their own parameter syntax; the mnemonics are
	// reserved until that is implemented
	reserve(dns.TypeSVCB)
	reserve(dns.TypeHTTPS)
}

// parseTypeText maps a type mnemonic or the TYPE<n> generic form to a type
// code. Mnemonics miekg/dns knows but this parser has no descriptor for are
// reserved the same way SVCB is.
func (p *Parser) parseTypeText(data []byte) uint16 {
	if info, ok := typeNames[strings.ToUpper(string(data))]; ok {
		return info.code
	}
	if len(data) > 4 && equalFold(data[:4], "TYPE") {
		if v, ok := parseUint(data[4:], 65535); ok {
			return uint16(v)
		}
	}
	if code, ok := dns.StringToType[strings.ToUpper(string(data))]; ok {
		return code
	}
	p.semantic("unknown record type %q", data)
	return 0
}
