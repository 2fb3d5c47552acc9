// Package language maps between ISO 639 codes, full language names, and
// display names, and knows which languages the XTTS v2 synthesis model can
// speak. Whisper, the translator, and XTTS all take ISO 639-1 codes, so
// everything funnels through ToISO2.
package language
