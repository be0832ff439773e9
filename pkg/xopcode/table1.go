package xopcode

// Table1 is the one-byte opcode map, indexed by the first opcode byte.
// Reproduced byte-exact from opcode1_map in the original opcodes.h.
var Table1 = [256]Flags{
	/* 00 */
	HasModRM,                 // ADD Eb, Gb
	HasModRM,                 // ADD Ev, Gv
	HasModRM,                 // ADD Gb, Eb
	HasModRM,                 // ADD Gv, Ev
	ImmByte,                  // ADD AL, Ib
	ImmWordOrDWord,           // ADD eAX, Iv
	0,                        // PUSH ES
	0,                        // POP ES

	/* 08 */
	HasModRM,       // OR Eb, Gb
	HasModRM,       // OR Ev, Gv
	HasModRM,       // OR Gb, Eb
	HasModRM,       // OR Gv, Ev
	ImmByte,        // OR AL, Ib
	ImmWordOrDWord, // OR eAX, Iv
	0,              // PUSH CS
	Escape,         // escape to the 2-byte opcode table

	/* 10 */
	HasModRM,       // ADC Eb, Gb
	HasModRM,       // ADC Ev, Gv
	HasModRM,       // ADC Gb, Eb
	HasModRM,       // ADC Gv, Ev
	ImmByte,        // ADC AL, Ib
	ImmWordOrDWord, // ADC eAX, Iv
	0,              // PUSH SS
	0,              // POP SS

	/* 18 */
	HasModRM,       // SBB Eb, Gb
	HasModRM,       // SBB Ev, Gv
	HasModRM,       // SBB Gb, Eb
	HasModRM,       // SBB Gv, Ev
	ImmByte,        // SBB AL, Ib
	ImmWordOrDWord, // SBB eAX, Iv
	0,              // PUSH DS
	0,              // POP DS

	/* 20 */
	HasModRM,       // AND Eb, Gb
	HasModRM,       // AND Ev, Gv
	HasModRM,       // AND Gb, Eb
	HasModRM,       // AND Gv, Ev
	ImmByte,        // AND AL, Ib
	ImmWordOrDWord, // AND eAX, Iv
	0,              // segment override ES
	0,              // DAA

	/* 28 */
	HasModRM,       // SUB Eb, Gb
	HasModRM,       // SUB Ev, Gv
	HasModRM,       // SUB Gb, Eb
	HasModRM,       // SUB Gv, Ev
	ImmByte,        // SUB AL, Ib
	ImmWordOrDWord, // SUB eAX, Iv
	0,              // segment override CS
	0,              // DAS

	/* 30 */
	HasModRM,       // XOR Eb, Gb
	HasModRM,       // XOR Ev, Gv
	HasModRM,       // XOR Gb, Eb
	HasModRM,       // XOR Gv, Ev
	ImmByte,        // XOR AL, Ib
	ImmWordOrDWord, // XOR eAX, Iv
	0,              // segment override SS
	0,              // AAA

	/* 38 */
	HasModRM,       // CMP Eb, Gb
	HasModRM,       // CMP Ev, Gv
	HasModRM,       // CMP Gb, Eb
	HasModRM,       // CMP Gv, Ev
	ImmByte,        // CMP AL, Ib
	ImmWordOrDWord, // CMP eAX, Iv
	0,              // segment override DS
	0,              // AAS

	/* 40 */
	0, 0, 0, 0, 0, 0, 0, 0, // INC eAX..eDI

	/* 48 */
	0, 0, 0, 0, 0, 0, 0, 0, // DEC eAX..eDI

	/* 50 */
	0, 0, 0, 0, 0, 0, 0, 0, // PUSH eAX..eDI

	/* 58 */
	0, 0, 0, 0, 0, 0, 0, 0, // POP eAX..eDI

	/* 60 */
	0,                 // PUSHA
	0,                 // POPA
	HasModRM,          // BOUND Gv, Ma
	HasModRM,          // ARPL Ew, Gw
	0,                 // segment override FS
	0,                 // segment override GS
	0,                 // operand-size prefix
	0,                 // address-size prefix

	/* 68 */
	ImmWordOrDWord,        // PUSH Iv
	HasModRM | ImmWordOrDWord, // IMUL Gv, Ev, Iv
	ImmByte,               // PUSH Ib
	HasModRM | ImmByte,     // IMUL Gv, Ev, Ib
	0,                      // INSB Yb, DX
	0,                      // INSW/D Yv, DX
	0,                      // OUTSB DX, Xb
	0,                      // OUTSW/D DX, Xv

	/* 70 */
	Relative | ImmByte, // JO rel8
	Relative | ImmByte, // JNO rel8
	Relative | ImmByte, // JB/JNAE/JC rel8
	Relative | ImmByte, // JNB/JAE/JNC rel8
	Relative | ImmByte, // JZ rel8
	Relative | ImmByte, // JNZ rel8
	Relative | ImmByte, // JBE rel8
	Relative | ImmByte, // JNBE rel8

	/* 78 */
	Relative | ImmByte, // JS rel8
	Relative | ImmByte, // JNS rel8
	Relative | ImmByte, // JP rel8
	Relative | ImmByte, // JNP rel8
	Relative | ImmByte, // JL rel8
	Relative | ImmByte, // JNL rel8
	Relative | ImmByte, // JLE rel8
	Relative | ImmByte, // JNLE rel8

	/* 80 */
	HasModRM | ImmByte,        // Immediate Group 1
	HasModRM | ImmWordOrDWord, // Immediate Group 1
	HasModRM | ImmByte,        // Immediate Group 1
	HasModRM | ImmByte,        // Immediate Group 1
	HasModRM,                  // TEST Eb, Gb
	HasModRM,                  // TEST Ev, Gv
	HasModRM,                  // XCHG Eb, Gb
	HasModRM,                  // XCHG Ev, Gv

	/* 88 */
	HasModRM, // MOV Eb, Gb
	HasModRM, // MOV Ev, Gv
	HasModRM, // MOV Gb, Eb
	HasModRM, // MOV Gv, Ev
	HasModRM, // MOV Ew, Sw
	HasModRM, // LEA Gv, M
	HasModRM, // MOV Sw, Ew
	HasModRM, // POP Ev

	/* 90 */
	0, 0, 0, 0, 0, 0, 0, 0, // NOP, XCHG eAX, r

	/* 98 */
	0, // CBW
	0, // CWD/CDQ
	0, // CALL Ap (far call; recognised, but not decoded as relative here)
	0, // WAIT
	0, // PUSHF
	0, // POPF
	0, // SAHF
	0, // LAHF

	/* A0 */
	ImmWordOrDWord, // MOV AL, Ob
	ImmDWord,       // MOV eAX, Ov
	ImmWordOrDWord, // MOV Ob, AL
	ImmWordOrDWord, // MOV Ov, eAX
	HasModRM,       // MOVSB Xb, Yb
	HasModRM,       // MOVSW Xv, Yv
	HasModRM,       // CMPSB Xb, Yb
	HasModRM,       // CMPSW Xv, Yv

	/* A8 */
	ImmByte,        // TEST AL, Ib
	ImmWordOrDWord, // TEST eAX, Iv
	HasModRM,       // STOSB Yb, AL
	HasModRM,       // STOSW/D Yv, eAX
	HasModRM,       // LODSB AL, Xb
	HasModRM,       // LODSW/D eAX, Xv
	HasModRM,       // SCASB AL, Yb
	HasModRM,       // SCASW/D AL, Yb

	/* B0 */
	ImmByte, ImmByte, ImmByte, ImmByte, // MOV AL/CL/DL/BL, b
	ImmByte, ImmByte, ImmByte, ImmByte, // MOV AH/CH/DH/BH, b

	/* B8 */
	ImmWordOrDWord, ImmWordOrDWord, ImmWordOrDWord, ImmWordOrDWord,
	ImmWordOrDWord, ImmWordOrDWord, ImmWordOrDWord, ImmWordOrDWord, // MOV eAX..eDI, v

	/* C0 */
	HasModRM | ImmByte, // Shift Group 2a
	HasModRM | ImmByte, // Shift Group 2a
	ImmWord,            // RET near
	0,                  // RET near
	HasModRM,           // LES Gv, Mp
	HasModRM,           // LDS Gv, Mp
	HasModRM | ImmByte, // MOV Eb, Ib
	HasModRM | ImmWordOrDWord, // MOV Ev, Iv

	/* C8 */
	Imm24,   // ENTER Iw, Ib
	0,       // LEAVE
	ImmWord, // RET far
	0,       // RET far
	0,       // INT 3
	ImmByte, // INT Ib
	0,       // INTO
	0,       // IRET

	/* D0 */
	HasModRM, // Shift Group 2
	HasModRM, // Shift Group 2
	HasModRM, // Shift Group 2
	HasModRM, // Shift Group 2
	0,        // AAM
	0,        // AAM
	0,        //
	0,        // XLAT

	/* D8 */
	Coprocessor, Coprocessor, Coprocessor, Coprocessor,
	Coprocessor, Coprocessor, Coprocessor, Coprocessor, // coprocessor escapes

	/* E0 */
	Relative | ImmByte, // LOOPN Jb
	Relative | ImmByte, // LOOPE Jb
	Relative | ImmByte, // LOOP Jb
	Relative | ImmByte, // JCXZ/JECXZ Jb
	ImmByte,            // IN AL, Ib
	ImmByte,            // IN eAX, Ib
	ImmByte,            // OUT Ib, AL
	ImmByte,            // OUT Ib, eAX

	/* E8 */
	Relative | ImmWordOrDWord, // CALL Jv
	Relative | ImmWordOrDWord, // JMP Jv
	ImmFarPtr,                 // JMP Ap
	Relative | ImmByte,        // JMP Jb
	0,                         // IN AL, DX
	0,                         // IN eAX, DX
	0,                         // OUT DX, AL
	0,                         // OUT DX, eAX

	/* F0 */
	0,        // LOCK prefix
	0,        //
	0,        // REPNE prefix
	0,        // REP/REPE prefix
	0,        // HLT
	0,        // CMC
	HasModRM, // Group 3
	HasModRM, // Group 3

	/* F8 */
	0, // CLC
	0, // STC
	0, // CLI
	0, // STI
	0, // CLD
	0, // STD
	HasModRM, // INC/DEC Group 4
	HasModRM, // INC/DEC Group 5
}
