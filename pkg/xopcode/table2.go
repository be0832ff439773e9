package xopcode

// Table2 is the two-byte opcode map, indexed by the byte following the
// 0x0F escape. Reproduced byte-exact from opcode2_map in the original
// opcodes.h.
var Table2 = [256]Flags{
	/* 00 */
	HasModRM, // Group 6
	0,
	HasModRM, // LAR Gv, Ew
	HasModRM, // LSL Gv, Ew
	0,
	0,
	0, // CLTS
	0,

	/* 08 */
	0, // INVD
	0, // WBINVD
	0,
	0, // UD2
	0,
	0,
	0,
	0,

	/* 10 */
	0, 0, 0, 0, 0, 0, 0, 0,

	/* 18 */
	0, 0, 0, 0, 0, 0, 0, 0,

	/* 20 */
	HasModRM, // MOV Rd, Cd
	HasModRM, // MOV Rd, Dd
	HasModRM, // MOV Cd, Rd
	HasModRM, // MOV Dd, Rd
	0,
	0,
	0,
	0,

	/* 28 */
	0, 0, 0, 0, 0, 0, 0, 0,

	/* 30 */
	0, // WRMSR
	0, // RDTSC
	0, // RDMSR
	0, // RDPMC
	0,
	0,
	0,
	0,

	/* 38 */
	0, 0, 0, 0, 0, 0, 0, 0,

	/* 40 */
	HasModRM, // CMOVO Gv, Ev
	HasModRM, // CMOVNO Ev, Gv
	HasModRM, // CMOVB/CMOVC/CMOVNAE Gv, Ev
	HasModRM, // CMOVNB/CMOVNC/CMOVAE Gv, Ev
	HasModRM, // CMOVE/CMOVZ Gv, Ev
	HasModRM, // CMOVNE/CMOVNZ Gv, Ev
	HasModRM, // CMOVBE/CMOVNA Gv, Ev
	HasModRM, // CMOVA/CMOVNBE Gv, Ev

	/* 48 */
	HasModRM, // CMOVS Gv, Ev
	HasModRM, // CMOVNS Gv, Ev
	HasModRM, // CMOVP/CMOVPE Gv, Ev
	HasModRM, // CMOVNP/CMOVPO Gv, Ev
	HasModRM, // CMOVGE/CMOVNL Gv, Ev
	HasModRM, // CMOVL/CMOVNGE Gv, Ev
	HasModRM, // CMOVLE/CMOVNG Gv, Ev
	HasModRM, // CMOVG/CMOVNLE Gv, Ev

	/* 50 */
	0, 0, 0, 0, 0, 0, 0, 0,

	/* 58 */
	0, 0, 0, 0, 0, 0, 0, 0,

	/* 60 */
	HasModRM, // PUNPCKLBW Pq, Qd
	HasModRM, // PUNPCKLWD Pq, Qd
	HasModRM, // PUNPCKLDQ Pq, Qd
	HasModRM, // PACKUSDW Pq, Qd
	HasModRM, // PCMPGTB Pq, Qd
	HasModRM, // PCMPGTW Pq, Qd
	HasModRM, // PCMPGTD Pq, Qd
	HasModRM, // PACKSSWB Pq, Qd

	/* 68 */
	HasModRM, // PUNPCKHBW Pq, Qd
	HasModRM, // PUNPCKHWD Pq, Qd
	HasModRM, // PUNPCKHDQ Pq, Qd
	HasModRM, // PACKSSDW Pq, Qd
	0,
	0,
	HasModRM, // MOVD Pd, Ed
	HasModRM, // MOVQ Pq, Qq

	/* 70 */
	0,
	0, // PSHIMW
	0, // PSHIMD
	0, // PSHIMQ
	HasModRM, // PCMPEQB Pq, Qd
	HasModRM, // PCMPEQW Pq, Qd
	HasModRM, // PCMPEQD Pq, Qd
	0,        // EMMS

	/* 78 */
	0, 0, 0, 0, 0, 0,
	HasModRM, // MOVD Ed, Pd
	HasModRM, // MOVQ Qq, Pq

	/* 80 */
	Relative | ImmWordOrDWord, // JO rel32
	Relative | ImmWordOrDWord, // JNO rel32
	Relative | ImmWordOrDWord, // JB rel32
	Relative | ImmWordOrDWord, // JNB rel32
	Relative | ImmWordOrDWord, // JZ rel32
	Relative | ImmWordOrDWord, // JNZ rel32
	Relative | ImmWordOrDWord, // JBE rel32
	Relative | ImmWordOrDWord, // JNBE rel32

	/* 88 */
	Relative | ImmWordOrDWord, // JS rel32
	Relative | ImmWordOrDWord, // JNS rel32
	Relative | ImmWordOrDWord, // JP rel32
	Relative | ImmWordOrDWord, // JNP rel32
	Relative | ImmWordOrDWord, // JL rel32
	Relative | ImmWordOrDWord, // JNL rel32
	Relative | ImmWordOrDWord, // JLE rel32
	Relative | ImmWordOrDWord, // JNLE rel32

	/* 90 */
	0, // SETO
	0, // SETNO
	0, // SETB
	0, // SETNB
	0, // SETZ
	0, // SETNZ
	0, // SETBE
	0, // SETNBE

	/* 98 */
	0, // SETS
	0, // SETNS
	0, // SETP
	0, // SETNP
	0, // SETL
	0, // SETNL
	0, // SETLE
	0, // SETNLE

	/* A0 */
	0,                  // PUSH FS
	0,                  // POP FS
	0,                  // CPUID
	HasModRM,           // BT Ev, Gv
	HasModRM | ImmByte, // SHLD Ev, Gv, Ib
	HasModRM,           // SHLD Ev, Gv, CL
	0,
	0,

	/* A8 */
	0,                  // PUSH GS
	0,                  // POP GS
	0,                  // RSM
	HasModRM,           // BTS Ev, Gv
	HasModRM | ImmByte, // SHRD Ev, Gv, Ib
	HasModRM,           // SHRD Ev, Gv, CL
	0,
	HasModRM, // IMUL Gv, Ev

	/* B0 */
	HasModRM, // CMPXCHG Eb, Gb
	HasModRM, // CMPXCHG Ev, Gv
	HasModRM, // LSS Mp
	HasModRM, // BTR Ev, Gv
	HasModRM, // LFS Mp
	HasModRM, // LGS Mp
	HasModRM, // MOVZX Gv, Eb
	HasModRM, // MOVZX Gv, Ew

	/* B8 */
	0,
	0,                  // invalid
	HasModRM | ImmByte, // Group 8 (Ev, Ib)
	HasModRM,           // BTC Ev, Gv
	HasModRM,           // BSF Gv, Ev
	HasModRM,           // BSR Gv, Ev
	HasModRM,           // MOVSX Gv, Eb
	HasModRM,           // MOVSX Gv, Ew

	/* C0 */
	HasModRM, // XADD Eb, Gb
	HasModRM, // XADD Ev, Gv
	0,
	0,
	0,
	0,
	0,
	0, // Group 9

	/* C8 */
	0, 0, 0, 0, 0, 0, 0, 0, // BSWAP EAX..EDI

	/* D0 */
	0,
	HasModRM, // PSRLW Pq, Qd
	HasModRM, // PSRLD Pq, Qd
	HasModRM, // PSRLQ Pq, Qd
	0,
	HasModRM, // PMULLW Pq, Qd
	0,
	0,

	/* D8 */
	HasModRM, // PSUBUSB Pq, Qq
	HasModRM, // PSUBUSW Pq, Qq
	0,
	HasModRM, // PAND Pq, Qq
	HasModRM, // PADDUSD Pq, Qq
	HasModRM, // PADDUSW Pq, Qq
	0,
	HasModRM, // PANDN Pq, Qq

	/* E0 */
	0,
	HasModRM, // PSRAW Pq, Qd
	HasModRM, // PSRAD Pq, Qd
	0,
	0,
	HasModRM, // PMULHW Pq, Qd
	0,
	0,

	/* E8 */
	HasModRM, // PSUBSB Pq, Qd
	HasModRM, // PSUBSW Pq, Qd
	0,
	HasModRM, // POR Pq, Qd
	HasModRM, // PADDSB Pq, Qd
	HasModRM, // PADDSW Pq, Qd
	0,
	HasModRM, // PXOR Pq, Qd

	/* F0 */
	0,
	HasModRM, // PSLLW Pq, Qd
	HasModRM, // PSLLD Pq, Qd
	HasModRM, // PSLLQ Pq, Qd
	0,
	HasModRM, // PMADDWD Pq, Qd
	0,
	0,

	/* F8 */
	HasModRM, // PSUBB Pq, Qd
	HasModRM, // PSUBW Pq, Qd
	HasModRM, // PSUBD Pq, Qd
	0,
	HasModRM, // PADDB Pq, Qd
	HasModRM, // PADDW Pq, Qd
	HasModRM, // PADDD Pq, Qd
	0,
}
